package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

// parsePhone reads "number:citycode:countrycode", e.g. "87650009:7:25".
func parsePhone(s string) (rpc.Phone, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return rpc.Phone{}, fmt.Errorf("phone %q: want number:citycode:countrycode", s)
	}
	number, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return rpc.Phone{}, fmt.Errorf("phone number %q: %w", parts[0], err)
	}
	city, err := strconv.Atoi(parts[1])
	if err != nil {
		return rpc.Phone{}, fmt.Errorf("city code %q: %w", parts[1], err)
	}
	return rpc.Phone{Number: number, CityCode: city, CountryCode: parts[2]}, nil
}

func (a *App) SignUp(ctx context.Context, args []string) error {
	req := &rpc.SignUpRequest{}

	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.Func("phone", "phone as number:citycode:countrycode (repeatable)", func(v string) error {
		p, err := parsePhone(v)
		if err != nil {
			return err
		}
		req.Phones = append(req.Phones, p)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	if req.Email == "" {
		email, err := GetSimpleText(a.in, "Enter email", a.out)
		if err != nil {
			return err
		}
		req.Email = email
	}

	password, err := GetSecret(a.in, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	// The request needs a string, which stays in memory after the wipe.
	req.Password = string(password)

	reply, err := a.client.SignUp(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(reply)
}
