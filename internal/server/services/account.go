// Package services contains server-side business logic. This file implements
// AccountService, which registers accounts and re-authenticates them by
// bearer token, rotating the token on every successful login.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
)

// CredentialValidator checks candidate credentials against configured patterns.
type CredentialValidator interface {
	ValidateEmail(candidate string) bool
	ValidatePassword(candidate string) bool
}

// PasswordHasher produces one-way digests of plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// TokenAuthority issues and verifies bearer tokens.
type TokenAuthority interface {
	Issue(subject string, now time.Time) (string, error)
	Validate(token string) bool
	SubjectOf(token string) (string, bool)
}

// FlowObserver is notified once per completed flow.
type FlowObserver interface {
	Observe(flow string, err error, elapsed time.Duration)
}

// SignUpInput is the data supplied by a registering user.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phones   []models.Phone
}

// AccountService implements the sign-up and login flows on top of an
// accounts.Repository.
type AccountService struct {
	repo      accounts.Repository
	validator CredentialValidator
	hasher    PasswordHasher
	tokens    TokenAuthority
	log       logging.Logger
	observer  FlowObserver
	now       func() time.Time
	newID     func() string
}

// Option customizes an AccountService.
type Option func(*AccountService)

// WithClock replaces time.Now as the source of createdAt/lastLoginAt and
// token issue times.
func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

// WithObserver attaches flow metrics.
func WithObserver(o FlowObserver) Option {
	return func(s *AccountService) { s.observer = o }
}

// WithIDGenerator replaces the UUID generator for new accounts.
func WithIDGenerator(newID func() string) Option {
	return func(s *AccountService) { s.newID = newID }
}

// NewAccountService wires the flows to their collaborators. A nil log is
// replaced with a no-op logger.
func NewAccountService(repo accounts.Repository, validator CredentialValidator, hasher PasswordHasher,
	tokens TokenAuthority, log logging.Logger, opts ...Option) *AccountService {
	if log == nil {
		log = logging.Nop{}
	}
	s := &AccountService{
		repo:      repo,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		log:       log.With("module", "accounts"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp registers a new account and issues its first token.
//
// Checks run in order: email format, password format, email availability.
// The returned account carries the password hash, never the plaintext.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (account *models.Account, err error) {
	defer s.observe(metrics.FlowSignUp, time.Now(), &err)

	email := normalizeEmail(in.Email)
	if email == "" || !s.validator.ValidateEmail(email) {
		return nil, common.InvalidFormat("email")
	}
	if in.Password == "" || !s.validator.ValidatePassword(in.Password) {
		return nil, common.InvalidFormat("password")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup by email", err)
	}
	if existing != nil {
		s.log.Info(ctx, "sign-up rejected, email taken", "email", email)
		return nil, common.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	now := s.now()
	token, err := s.tokens.Issue(email, now)
	if err != nil {
		s.log.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}

	account = &models.Account{
		ID:           s.newID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Token:        token,
		IsActive:     true,
		CreatedAt:    now,
		LastLoginAt:  now,
		Phones:       append([]models.Phone(nil), in.Phones...),
	}

	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.log.Info(ctx, "sign-up lost race for email", "email", email)
			return nil, common.ErrAlreadyExists
		}
		return nil, s.storeFailure(ctx, "save new account", err)
	}

	s.log.Info(ctx, "account created", "id", saved.ID, "email", saved.Email)
	return saved, nil
}

// Login re-authenticates the holder of a bearer token and rotates it.
// token must already have its "Bearer " prefix removed.
func (s *AccountService) Login(ctx context.Context, token string) (account *models.Account, err error) {
	defer s.observe(metrics.FlowLogin, time.Now(), &err)

	token = strings.TrimSpace(token)
	if token == "" || !s.tokens.Validate(token) {
		return nil, common.ErrInvalidToken
	}
	subject, ok := s.tokens.SubjectOf(token)
	if !ok || strings.TrimSpace(subject) == "" {
		return nil, common.ErrInvalidToken
	}

	account, err = s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, s.storeFailure(ctx, "lookup by token", err)
	}
	if account == nil {
		s.log.Info(ctx, "login rejected, token not current", "email", subject)
		return nil, common.ErrAccountNotFound
	}
	if subject != account.Email {
		s.log.Warn(ctx, "login rejected, subject mismatch", "id", account.ID)
		return nil, common.ErrInvalidToken
	}
	if !account.IsActive {
		s.log.Info(ctx, "login rejected, account inactive", "id", account.ID)
		return nil, common.ErrInactiveAccount
	}

	// lastLoginAt never moves backwards, even if the clock does.
	now := s.now()
	if now.Before(account.LastLoginAt) {
		now = account.LastLoginAt
	}

	rotated, err := s.tokens.Issue(subject, now)
	if err != nil {
		s.log.Error(ctx, "token issue failed", "error", err)
		return nil, common.ErrorInternal
	}
	if rotated == token {
		s.log.Error(ctx, "token authority reissued the presented token", "id", account.ID)
		return nil, common.ErrorInternal
	}

	account.Token = rotated
	account.LastLoginAt = now

	saved, err := s.repo.RotateToken(ctx, account, token)
	if err != nil {
		if errors.Is(err, accounts.ErrStaleToken) {
			s.log.Warn(ctx, "login lost race, token already rotated", "id", account.ID)
			return nil, common.ErrPersistenceFailure
		}
		return nil, s.storeFailure(ctx, "save login", err)
	}

	s.log.Info(ctx, "login succeeded", "id", saved.ID)
	return saved, nil
}

// storeFailure logs the storage error and returns the error handed to the
// caller. Context errors pass through so the transport can report them.
func (s *AccountService) storeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	s.log.Error(ctx, "account store failure", "op", op, "error", err)
	return common.ErrPersistenceFailure
}

func (s *AccountService) observe(flow string, start time.Time, err *error) {
	if s.observer != nil {
		s.observer.Observe(flow, *err, time.Since(start))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
