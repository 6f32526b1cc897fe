package cli

import (
	"context"
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

func (a *App) Login(ctx context.Context, args []string) error {
	var token string

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&token, "token", "", "current bearer token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if token == "" {
		secret, err := GetSecret(a.in, "Enter token", a.out)
		if err != nil {
			return err
		}
		// The string copy outlives the wipe; only the read buffer is cleared.
		token = string(secret)
		common.WipeByteArray(secret)
	}

	reply, err := a.client.Login(ctx, token)
	if err != nil {
		return err
	}
	return a.printJSON(reply)
}
