package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

const (
	uniqueViolation    = "23505"
	emailConstraint    = "accounts_email_key"
	selectAccountQuery = `SELECT id, name, email, password_hash, token, is_active, created_at, last_login_at
		 FROM accounts
		 `
)

// PostgresRepository stores accounts and their phones in PostgreSQL.
// Save issues several statements; run it on a *sql.Tx (see
// repomanager.AccountStore) when atomicity matters.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, selectAccountQuery+`WHERE email = $1`, email)
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Account, error) {
	return r.findOne(ctx, selectAccountQuery+`WHERE token = $1`, token)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	account := &models.Account{}
	var token sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&token, &account.IsActive, &account.CreatedAt, &account.LastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.Token = token.String

	phones, err := r.phones(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	account.Phones = phones

	return account, nil
}

func (r *PostgresRepository) phones(ctx context.Context, accountID string) ([]models.Phone, error) {
	query :=
		`SELECT number, city_code, country_code FROM phones
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var phones []models.Phone
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.Number, &p.CityCode, &p.CountryCode); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return phones, nil
}

// Save upserts the account row. Phones are written only when the row is
// new: nothing after sign-up changes them. Email and password hash are
// immutable once stored.
func (r *PostgresRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, name, email, password_hash, token, is_active, created_at, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET name = EXCLUDED.name, token = EXCLUDED.token, is_active = EXCLUDED.is_active, last_login_at = EXCLUDED.last_login_at
		 RETURNING created_at, (xmax = 0) AS inserted
		 `

	saved := account.Clone()
	token := sql.NullString{String: account.Token, Valid: account.Token != ""}

	var inserted bool
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash,
		token, account.IsActive, account.CreatedAt, account.LastLoginAt,
	).Scan(&saved.CreatedAt, &inserted)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailConstraint {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if inserted {
		for _, p := range account.Phones {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO phones (account_id, number, city_code, country_code) VALUES ($1, $2, $3, $4)`,
				account.ID, p.Number, p.CityCode, p.CountryCode)
			if err != nil {
				return nil, fmt.Errorf("db error: %w", err)
			}
		}
	}

	return saved, nil
}

// RotateToken is a compare-and-swap on the token column. Under concurrent
// logins the second UPDATE re-checks the predicate after the first commits
// and matches no row.
func (r *PostgresRepository) RotateToken(ctx context.Context, account *models.Account, prevToken string) (*models.Account, error) {
	query :=
		`UPDATE accounts SET token = $2, last_login_at = $3
		 WHERE id = $1 AND token = $4
		 RETURNING created_at
		 `

	saved := account.Clone()
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Token, account.LastLoginAt, prevToken,
	).Scan(&saved.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaleToken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return saved, nil
}
