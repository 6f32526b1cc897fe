package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop{}, &fakeFlows{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop{}, &fakeFlows{}, nil)

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error for invalid port")
	}
}

// dialService serves a real AccountService over an in-memory listener.
func dialService(t *testing.T) *grpc.ClientConn {
	t.Helper()

	authority, err := auth.NewAuthority("secret", time.Hour)
	require.NoError(t, err)
	validator, err := validation.NewCredentialValidator(config.DefaultEmailPattern, config.DefaultPasswordPattern)
	require.NoError(t, err)
	svc := services.NewAccountService(accounts.NewMemoryRepository(), validator, plainHasher{}, authority, logging.Nop{})

	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer("bufconn", logging.Nop{}, svc, nil).NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "digest-of-" + p, nil }

func TestEndToEnd_SignUpThenLogin(t *testing.T) {
	client := rpc.NewAccountServiceClient(dialService(t))
	ctx := context.Background()

	created, err := client.SignUp(ctx, &rpc.SignUpRequest{
		Email:    "kevin@example.com",
		Password: "Abcdef12",
		Phones:   []rpc.Phone{{Number: 87650009, CityCode: 7, CountryCode: "25"}},
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "digest-of-Abcdef12", created.PasswordHash)
	assert.Len(t, created.Phones, 1)

	_, err = client.SignUp(ctx, &rpc.SignUpRequest{Email: "kevin@example.com", Password: "Abcdef12"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	md := metadata.Pairs("authorization", "Bearer "+created.Token)
	logged, err := client.Login(metadata.NewOutgoingContext(ctx, md), &rpc.LoginRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, created.Token, logged.Token)
	assert.Equal(t, created.ID, logged.ID)

	_, err = client.Login(metadata.NewOutgoingContext(ctx, md), &rpc.LoginRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err), "rotated token must not log in again")

	_, err = client.Login(ctx, &rpc.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEndToEnd_Health(t *testing.T) {
	conn := dialService(t)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: rpc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: rpc.ServiceName}, grpc.CallContentSubtype(rpc.CodecName))
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
