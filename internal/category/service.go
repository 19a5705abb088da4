package category

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mslima/blog-core-go/internal/category/entity"
)

var ErrNotFound = errors.New("category not found")

// Store is the persistence surface the service needs; satisfied by
// repo.CategoryRepo and by fakes in tests.
type Store interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) (int64, error)
	Update(ctx context.Context, c *entity.Category) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

const listCacheKey = "categories"

// Service wraps category persistence with a single-slot TTL cache on the
// listing. Concurrent requests may race to recompute the slot right after
// expiry; the recomputation is an idempotent read, so at-least-once is fine
// and no extra locking is used.
type Service struct {
	store Store
	cache *expirable.LRU[string, []entity.Category]
}

func NewService(store Store, cacheTTL time.Duration) *Service {
	return &Service{
		store: store,
		cache: expirable.NewLRU[string, []entity.Category](1, nil, cacheTTL),
	}
}

// List returns all categories, memoized for the cache TTL.
func (s *Service) List(ctx context.Context) ([]entity.Category, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached, nil
	}
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Add(listCacheKey, out)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, name, slug string) (*entity.Category, error) {
	c := &entity.Category{Name: name, Slug: strings.ToLower(slug)}
	id, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	s.cache.Remove(listCacheKey)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, slug string) (*entity.Category, error) {
	c := &entity.Category{ID: id, Name: name, Slug: strings.ToLower(slug)}
	rows, err := s.store.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	s.cache.Remove(listCacheKey)
	return c, nil
}

// Delete removes a category and returns the deleted entity.
func (s *Service) Delete(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	s.cache.Remove(listCacheKey)
	return c, nil
}
