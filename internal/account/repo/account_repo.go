package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mslima/blog-core-go/internal/account/entity"
)

// AccountRepo provides data access for accounts and their roles using sqlx.
type AccountRepo struct {
	db *sqlx.DB
}

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

// EnsureTable creates the accounts/roles tables if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *AccountRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS accounts (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email CITEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL,
  password_hash TEXT,
  image TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS roles (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS account_roles (
  account_id BIGINT NOT NULL REFERENCES accounts(id),
  role_id BIGINT NOT NULL REFERENCES roles(id),
  PRIMARY KEY (account_id, role_id)
);
CREATE INDEX IF NOT EXISTS idx_accounts_slug ON accounts(slug);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new account row. Returns the new ID. A unique violation on
// email surfaces as the driver's error and is classified by the service.
func (r *AccountRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	const q = `INSERT INTO accounts (name, email, slug, password_hash, image)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, q, u.Name, u.Email, u.Slug, u.PasswordHash, u.Image).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByEmail loads an account with its roles eagerly. Token issuance depends
// on the roles being present, so they are always joined in here.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, name, email, slug, password_hash, image, created_at, updated_at
		FROM accounts WHERE email = $1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	const qr = `SELECT r.id, r.name, r.slug FROM roles r
		JOIN account_roles ar ON ar.role_id = r.id
		WHERE ar.account_id = $1 ORDER BY r.id`
	if err := r.db.SelectContext(ctx, &u.Roles, qr, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateImage stores the image reference for an account. Returns false when
// no such account exists.
func (r *AccountRepo) UpdateImage(ctx context.Context, id int64, image string) (bool, error) {
	const q = `UPDATE accounts SET image = $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, image, id)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
