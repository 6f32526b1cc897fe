package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedAndAnnotated(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_accounts.sql", "00002_create_phones.sql"}, names)

	for _, name := range names {
		body, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), name)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), name)
	}
}

func TestMigrations_AccountConstraintNames(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "00001_create_accounts.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "accounts_email_key")
	assert.Contains(t, string(body), "accounts_token_key")
}
