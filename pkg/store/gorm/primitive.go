package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// find loads the entity with the given primary key
func find[T any](ctx context.Context, db *gorm.DB, key any, preload ...string) (*T, error) {
	var out T
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if err := q.Where("id = ?", key).Take(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %T %v", store.ErrNotFound, out, key)
		}
		return nil, err
	}
	return &out, nil
}

// query returns every entity matching where. An empty where matches all.
func query[T any](ctx context.Context, db *gorm.DB, where string, args ...any) ([]*T, error) {
	var out []*T
	q := db.WithContext(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// save inserts or updates entity by primary key, associations included
func save(ctx context.Context, db *gorm.DB, entity any) error {
	return db.WithContext(ctx).Save(entity).Error
}

// saveOnly is save without touching associations
func saveOnly(ctx context.Context, db *gorm.DB, entity any) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// remove deletes the row of entity
func remove(ctx context.Context, db *gorm.DB, entity any) error {
	return db.WithContext(ctx).Delete(entity).Error
}

// deleteWhere deletes every row of T matching where and returns the count
func deleteWhere[T any](ctx context.Context, db *gorm.DB, where string, args ...any) (int64, error) {
	var zero T
	res := db.WithContext(ctx).Where(where, args...).Delete(&zero)
	return res.RowsAffected, res.Error
}

// crud implements store.Repository for string-keyed entities. Deletion runs
// the cascade plan of the entity kind.
type crud[T any] struct {
	r       *Repositories
	preload []string
	plan    func(tx *Repositories) *cascade.Plan[*T]
	guard   func(*T) error
}

func (c *crud[T]) Find(ctx context.Context, key string) (*T, error) {
	return find[T](ctx, c.r.db, key, c.preload...)
}

func (c *crud[T]) FindAll(ctx context.Context) ([]*T, error) {
	return query[T](ctx, c.r.db, "")
}

func (c *crud[T]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := save(ctx, c.r.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (c *crud[T]) Delete(ctx context.Context, entity *T) error {
	if c.guard != nil {
		if err := c.guard(entity); err != nil {
			return err
		}
	}
	return c.r.Transaction(ctx, func(tx *Repositories) error {
		return c.plan(tx).Run(ctx, entity, tx.hooks)
	})
}

func (c *crud[T]) DeleteByKey(ctx context.Context, key string) error {
	return c.r.Transaction(ctx, func(tx *Repositories) error {
		entity, err := find[T](ctx, tx.db, key, c.preload...)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.guard != nil {
			if err := c.guard(entity); err != nil {
				return err
			}
		}
		return c.plan(tx).Run(ctx, entity, tx.hooks)
	})
}

// removeRoot is the Remove step of plans without extra work
func removeRoot[T any](tx *Repositories) func(context.Context, *T) error {
	return func(ctx context.Context, entity *T) error {
		return remove(ctx, tx.db, entity)
	}
}
