// Package store defines the repository contracts of idrepo.
//
// Every repository loads, saves and deletes one kind of entity. Deleting an
// entity that others reference also cleans up those references; DeleteByKey
// loads the entity and runs exactly the same cascade as Delete.
//
// # Errors
//
//   - ErrNotFound: a lookup by key found nothing. Deletes never return it.
//   - ErrUnsupportedKind: an owner or policy kind outside the closed set.
//   - ErrBuiltinAnyType: the USER and GROUP any types cannot be deleted.
//   - ErrRootRealm: the realm without a parent cannot be deleted.
//
// # Usage
//
//	repos := gorm.New(db, gorm.WithRegistry(registry))
//	err := repos.Transaction(ctx, func(tx *gorm.Repositories) error {
//	    return tx.Applications.DeleteByKey(ctx, "app1")
//	})
package store
