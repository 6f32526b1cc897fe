package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

type Client interface {
	Close() error
	SignUp(ctx context.Context, req *rpc.SignUpRequest) (*rpc.AccountReply, error)
	Login(ctx context.Context, token string) (*rpc.AccountReply, error)
}
