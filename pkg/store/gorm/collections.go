package gorm

import (
	"context"
	"fmt"
	"sort"

	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

type keyDeleter func(ctx context.Context, r *Repositories, key string) error

var collections = map[string]keyDeleter{
	"any-types":          func(ctx context.Context, r *Repositories, key string) error { return r.AnyTypes.DeleteByKey(ctx, key) },
	"applications":       func(ctx context.Context, r *Repositories, key string) error { return r.Applications.DeleteByKey(ctx, key) },
	"auth-modules":       func(ctx context.Context, r *Repositories, key string) error { return r.AuthModules.DeleteByKey(ctx, key) },
	"batches":            func(ctx context.Context, r *Repositories, key string) error { return r.Batches.DeleteByKey(ctx, key) },
	"client-apps":        func(ctx context.Context, r *Repositories, key string) error { return r.ClientApps.DeleteByKey(ctx, key) },
	"connectors":         func(ctx context.Context, r *Repositories, key string) error { return r.Connectors.DeleteByKey(ctx, key) },
	"implementations":    func(ctx context.Context, r *Repositories, key string) error { return r.Implementations.DeleteByKey(ctx, key) },
	"linked-accounts":    func(ctx context.Context, r *Repositories, key string) error { return r.LinkedAccounts.DeleteByKey(ctx, key) },
	"policies":           func(ctx context.Context, r *Repositories, key string) error { return r.Policies.DeleteByKey(ctx, key) },
	"privileges":         func(ctx context.Context, r *Repositories, key string) error { return r.Privileges.DeleteByKey(ctx, key) },
	"realms":             func(ctx context.Context, r *Repositories, key string) error { return r.Realms.DeleteByKey(ctx, key) },
	"reports":            func(ctx context.Context, r *Repositories, key string) error { return r.Reports.DeleteByKey(ctx, key) },
	"resources":          func(ctx context.Context, r *Repositories, key string) error { return r.Resources.DeleteByKey(ctx, key) },
	"roles":              func(ctx context.Context, r *Repositories, key string) error { return r.Roles.DeleteByKey(ctx, key) },
	"routes":             func(ctx context.Context, r *Repositories, key string) error { return r.Routes.DeleteByKey(ctx, key) },
	"security-questions": func(ctx context.Context, r *Repositories, key string) error { return r.SecurityQuestions.DeleteByKey(ctx, key) },
	"users":              func(ctx context.Context, r *Repositories, key string) error { return r.Users.DeleteByKey(ctx, key) },
}

// Collections returns the names accepted by DeleteFrom, sorted
func Collections() []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteFrom deletes the entity with the given key from a named collection,
// running its cascade. An absent key is a no-op.
func (r *Repositories) DeleteFrom(ctx context.Context, collection, key string) error {
	del, ok := collections[collection]
	if !ok {
		return fmt.Errorf("%w: collection %q", store.ErrUnknownCollection, collection)
	}
	return del(ctx, r, key)
}
