package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.Argon2Memory = 8 * 1024
	c.Argon2Iterations = 1
	c.Argon2Parallelism = 1
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), testConfig(), &logs)
	require.NoError(t, err)
	assert.Nil(t, app.db)
	assert.Contains(t, logs.String(), "accounts are kept in memory")

	acc, err := app.accounts.SignUp(context.Background(), services.SignUpInput{
		Email: "kevin@example.com", Password: "Abcdef12",
	})
	require.NoError(t, err)
	assert.NotContains(t, logs.String(), "Abcdef12")
	assert.NotContains(t, logs.String(), acc.Token)

	_, err = app.accounts.Login(context.Background(), acc.Token)
	require.NoError(t, err)
}

func TestNewApp_BadPatterns(t *testing.T) {
	c := testConfig()
	c.EmailPattern = "("
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_BadSecret(t *testing.T) {
	c := testConfig()
	c.SecretKey = ""
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_DatabaseOpenError(t *testing.T) {
	orig := openDB
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
	defer func() { openDB = orig }()

	c := testConfig()
	c.DatabaseDSN = "postgres://example"
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "bad dsn")
}

func TestNewApp_DatabasePingError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("unreachable"))
	mock.ExpectClose()

	orig := openDB
	openDB = func(string) (*sql.DB, error) { return db, nil }
	defer func() { openDB = orig }()

	c := testConfig()
	c.DatabaseDSN = "postgres://example"
	_, err = NewApp(context.Background(), c, &bytes.Buffer{})
	require.ErrorContains(t, err, "unreachable")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
