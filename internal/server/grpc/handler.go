package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.SignUpRequest) (*rpc.AccountReply, error) {

	phones := make([]models.Phone, len(req.Phones))
	for i, p := range req.Phones {
		phones[i] = models.Phone{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode}
	}

	account, err := s.accounts.SignUp(ctx, services.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phones:   phones,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(account), nil
}

func (s *GRPCServer) Login(ctx context.Context, _ *rpc.LoginRequest) (*rpc.AccountReply, error) {

	account, err := s.accounts.Login(ctx, bearerTokenFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	return toReply(account), nil
}

// toStatus maps flow errors onto gRPC codes. Unknown errors become
// Internal without leaking their text.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrAccountNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrInactiveAccount):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func toReply(a *models.Account) *rpc.AccountReply {
	reply := &rpc.AccountReply{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Token:        a.Token,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		LastLoginAt:  a.LastLoginAt,
	}
	for _, p := range a.Phones {
		reply.Phones = append(reply.Phones, rpc.Phone{Number: p.Number, CityCode: p.CityCode, CountryCode: p.CountryCode})
	}
	return reply
}
