package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/mslima/blog-core-go/internal/category/entity"
)

// CategoryRepo provides data access for the categories table using sqlx.
type CategoryRepo struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// EnsureTable creates the categories table if not exists (idempotent).
func (r *CategoryRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS categories (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	out := []entity.Category{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, slug FROM categories ORDER BY id`)
	return out, err
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.GetContext(ctx, &c, `SELECT id, name, slug FROM categories WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`, c.Name, c.Slug).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites name and slug; returns affected row count so callers can
// distinguish a missing id.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, slug = $2 WHERE id = $3`, c.Name, c.Slug, c.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
