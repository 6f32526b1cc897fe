// Package accounts is the account store port and its adapters.
package accounts

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository is the storage port used by the account flows.
//
// Lookups return (nil, nil) when nothing matches; errors are reserved for
// storage failures. Save inserts or updates by ID and returns the stored
// state. An email already owned by another account is reported as
// common.ErrAlreadyExists.
//
// RotateToken is the login write. It replaces the token and lastLoginAt of
// an existing account only while the stored token still equals prevToken,
// and reports ErrStaleToken otherwise. Of two logins racing on one token,
// exactly one succeeds.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByToken(ctx context.Context, token string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
	RotateToken(ctx context.Context, account *models.Account, prevToken string) (*models.Account, error)
}

// ErrStaleToken means the account's token changed (or the account vanished)
// between lookup and write.
var ErrStaleToken = errors.New("account token changed since lookup")
