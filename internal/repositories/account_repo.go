package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"investments-api/internal/models"
	"investments-api/pkg"
	"investments-api/pkg/database"
)

type AccountRepository interface {
	// FindByCredentials looks up an account matching both email and password digest.
	FindByCredentials(ctx context.Context, email, passwordDigest string) (*models.Account, error)
	FindByID(ctx context.Context, id int64) (*models.Account, error)
	Create(ctx context.Context, account models.Account) (int64, error)
}

type AccountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r AccountRepositoryImpl) FindByCredentials(ctx context.Context, email, passwordDigest string) (*models.Account, error) {
	row := r.db.QueryRow(ctx, `
						SELECT id, email, password_digest, created_at
						FROM accounts
						WHERE email = $1 AND password_digest = $2`,
		email, passwordDigest)
	return scanAccount(row)
}

func (r AccountRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	row := r.db.QueryRow(ctx, `
						SELECT id, email, password_digest, created_at
						FROM accounts
						WHERE id = $1`,
		id)
	return scanAccount(row)
}

func (r AccountRepositoryImpl) Create(ctx context.Context, account models.Account) (int64, error) {
	var id int64
	err := r.db.QueryRowPrimary(ctx, `
						INSERT INTO accounts (email, password_digest)
						VALUES ($1, $2)
						ON CONFLICT (email) DO UPDATE SET password_digest = EXCLUDED.password_digest
						RETURNING id`,
		account.Email, account.PasswordDigest,
	).Scan(&id)
	return id, err
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.Email, &account.PasswordDigest, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkg.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}
