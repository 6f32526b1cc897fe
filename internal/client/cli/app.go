package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

var ErrUsage = errors.New("usage: gophauth-client [global flags] signup|login [flags]")

type App struct {
	config *config.Config
	client client.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, c client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: cfg, client: c, in: bufio.NewReader(in), out: out}
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	switch args[0] {
	case "signup":
		return a.SignUp(ctx, args[1:])
	case "login":
		return a.Login(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, ErrUsage.Error())
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
