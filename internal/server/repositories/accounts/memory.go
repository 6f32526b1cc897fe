package accounts

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

var errTokenInUse = errors.New("token already assigned to another account")

// MemoryRepository keeps accounts in process memory. It is used when no
// database is configured and in tests. Values are copied on the way in and
// out, so callers never alias stored state.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byEmail map[string]string
	byToken map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]string),
		byToken: make(map[string]string),
	}
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[r.byEmail[email]].Clone(), nil
}

func (r *MemoryRepository) FindByToken(ctx context.Context, token string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[r.byToken[token]].Clone(), nil
}

func (r *MemoryRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byEmail[account.Email]; ok && owner != account.ID {
		return nil, common.ErrAlreadyExists
	}
	if account.Token != "" {
		if owner, ok := r.byToken[account.Token]; ok && owner != account.ID {
			return nil, errTokenInUse
		}
	}

	if prev, ok := r.byID[account.ID]; ok {
		delete(r.byEmail, prev.Email)
		delete(r.byToken, prev.Token)
	}

	stored := account.Clone()
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	if stored.Token != "" {
		r.byToken[stored.Token] = stored.ID
	}

	return stored.Clone(), nil
}

func (r *MemoryRepository) RotateToken(ctx context.Context, account *models.Account, prevToken string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[account.ID]
	if !ok || stored.Token != prevToken {
		return nil, ErrStaleToken
	}
	if owner, ok := r.byToken[account.Token]; ok && owner != account.ID {
		return nil, errTokenInUse
	}

	delete(r.byToken, stored.Token)
	stored.Token = account.Token
	stored.LastLoginAt = account.LastLoginAt
	if stored.Token != "" {
		r.byToken[stored.Token] = stored.ID
	}

	return stored.Clone(), nil
}
