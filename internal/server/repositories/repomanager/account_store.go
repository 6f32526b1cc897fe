package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
)

// AccountStore adapts a RepositoryManager to accounts.Repository. Lookups
// go straight to the pool; Save runs in its own transaction so the account
// row and its phones land together.
type AccountStore struct {
	db      *sql.DB
	manager RepositoryManager
}

func NewAccountStore(db *sql.DB, manager RepositoryManager) *AccountStore {
	return &AccountStore{db: db, manager: manager}
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.manager.Accounts(s.db).FindByEmail(ctx, email)
}

func (s *AccountStore) FindByToken(ctx context.Context, token string) (*models.Account, error) {
	return s.manager.Accounts(s.db).FindByToken(ctx, token)
}

func (s *AccountStore) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	var saved *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		saved, err = s.manager.Accounts(tx).Save(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// RotateToken is a single statement, so it runs on the pool.
func (s *AccountStore) RotateToken(ctx context.Context, account *models.Account, prevToken string) (*models.Account, error) {
	return s.manager.Accounts(s.db).RotateToken(ctx, account, prevToken)
}

var _ accounts.Repository = (*AccountStore)(nil)
