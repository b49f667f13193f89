// Package orm wraps *gorm.DB with the chainable helpers repositories share:
// scopes, offset pagination and cache-aside reads.
package orm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bilemo/api/pkg/cache"
)

type Query struct {
	db       *gorm.DB
	preloads []string
}

// Use starts a query on db, typically a repository's own handle or a
// transaction.
func Use(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx), preloads: q.preloads}
}

func (q *Query) Model(v any) *Query {
	return &Query{db: q.db.Model(v), preloads: q.preloads}
}

func (q *Query) Where(query any, args ...any) *Query {
	return &Query{db: q.db.Where(query, args...), preloads: q.preloads}
}

func (q *Query) Scopes(fns ...func(*gorm.DB) *gorm.DB) *Query {
	return &Query{db: q.db.Scopes(fns...), preloads: q.preloads}
}

func (q *Query) Order(value any) *Query {
	return &Query{db: q.db.Order(value), preloads: q.preloads}
}

// Preload is deferred until rows are loaded; gorm refuses Count on a
// statement that carries preloads.
func (q *Query) Preload(association string) *Query {
	preloads := append(append([]string{}, q.preloads...), association)
	return &Query{db: q.db, preloads: preloads}
}

func (q *Query) loader() *gorm.DB {
	tx := q.db.Session(&gorm.Session{})
	for _, p := range q.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

func (q *Query) First(dest any) error {
	return q.loader().First(dest).Error
}

// GetWithPagination counts the matching rows, then loads one page into dest.
func (q *Query) GetWithPagination(dest any, page, perPage int) (Pagination, error) {
	var total int64
	if err := q.db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	p := NewPagination(page, perPage, total)
	err := q.loader().Scopes(p.Scope()).Find(dest).Error
	return p, err
}

// Remember returns the cached value at key or computes, stores and returns
// it. Cache failures fall through to load.
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	_ = cache.Set(ctx, key, v, ttl)
	return v, nil
}
