// Package grpc exposes the account flows as gophauth.AccountService.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// AccountFlows is the slice of services.AccountService the handlers use.
type AccountFlows interface {
	SignUp(ctx context.Context, in services.SignUpInput) (*models.Account, error)
	Login(ctx context.Context, token string) (*models.Account, error)
}

type GRPCServer struct {
	rpc.UnimplementedAccountServiceServer
	address  string
	accounts AccountFlows
	logger   logging.Logger
	metrics  *metrics.GRPCMetrics
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountFlows, m *metrics.GRPCMetrics) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
		metrics:  m,
	}
}

// NewServer builds a grpc.Server with the account and health services registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.metrics.UnaryServerInterceptor(),
		s.bearerTokenInterceptor,
	))

	rpc.RegisterAccountServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
