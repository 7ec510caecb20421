package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.ImplementationStore = (*ImplementationStore)(nil)

// ImplementationStore implements store.ImplementationStore using GORM
type ImplementationStore struct {
	crud[model.Implementation]
}

// Save stores the implementation and purges its cache entry once committed
func (s *ImplementationStore) Save(ctx context.Context, impl *model.Implementation) (*model.Implementation, error) {
	err := s.r.Transaction(ctx, func(tx *Repositories) error {
		if err := save(ctx, tx.db, impl); err != nil {
			return err
		}
		key := impl.ID
		tx.hooks.Add("implementation "+key+" cache", func(context.Context) { tx.purgeImplementation(key) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return impl, nil
}

// FindByType returns the implementations of one type
func (s *ImplementationStore) FindByType(ctx context.Context, implType string) ([]*model.Implementation, error) {
	return query[model.Implementation](ctx, s.r.db, "impl_type = ?", implType)
}

// Load serves the implementation from the cache, reading and loading the row
// on a miss. Save and Delete purge the key once committed.
func (s *ImplementationStore) Load(ctx context.Context, key string) (*implcache.Loaded, error) {
	cache := s.r.implCache
	if cache != nil {
		if loaded, ok := cache.Get(key); ok {
			return loaded, nil
		}
	}

	impl, err := s.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return implcache.Parse(impl)
	}
	return cache.Load(impl)
}

func implementationPlan(tx *Repositories) *cascade.Plan[*model.Implementation] {
	return &cascade.Plan[*model.Implementation]{
		Root:   "implementation",
		Key:    func(i *model.Implementation) string { return i.ID },
		Remove: removeRoot[model.Implementation](tx),
		AfterCommit: []cascade.Hook[*model.Implementation]{{
			Name:     "cache",
			Target:   "implementation cache",
			Mutation: cascade.PurgeCache,
			Run: func(_ context.Context, i *model.Implementation) {
				tx.purgeImplementation(i.ID)
			},
		}},
	}
}

func (r *Repositories) purgeImplementation(key string) {
	if r.implCache != nil {
		r.implCache.Purge(key)
	}
}
