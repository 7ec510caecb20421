package gorm

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.ApplicationStore = (*ApplicationStore)(nil)

// ApplicationStore implements store.ApplicationStore using GORM
type ApplicationStore struct {
	crud[model.Application]
}

// applicationPlan clears every privilege of the application before the
// application row goes: the privilege is unlinked from roles and linked
// accounts, loses its owner and is deleted.
func applicationPlan(tx *Repositories) *cascade.Plan[*model.Application] {
	eachPrivilege := func(fn func(context.Context, *Repositories, *model.Privilege) error) func(context.Context, *model.Application) error {
		return func(ctx context.Context, app *model.Application) error {
			privileges, err := tx.Privileges.FindByApplication(ctx, app.ID)
			if err != nil {
				return err
			}
			for _, p := range privileges {
				if err := fn(ctx, tx, p); err != nil {
					return err
				}
			}
			return nil
		}
	}

	return &cascade.Plan[*model.Application]{
		Root: "application",
		Key:  func(a *model.Application) string { return a.ID },
		Relationships: []cascade.Relationship[*model.Application]{
			{Name: "roles", Referencer: "role", Mutation: cascade.Unlink, Apply: eachPrivilege(unlinkFromRoles)},
			{Name: "linked accounts", Referencer: "linked account", Mutation: cascade.Unlink, Apply: eachPrivilege(unlinkFromAccounts)},
			{Name: "privileges", Referencer: "privilege", Mutation: cascade.DeleteReferrers, Apply: eachPrivilege(detachAndDelete)},
		},
		Remove: func(ctx context.Context, app *model.Application) error {
			app.Privileges = nil
			return remove(ctx, tx.db, app)
		},
	}
}

var _ store.PrivilegeStore = (*PrivilegeStore)(nil)

// PrivilegeStore implements store.PrivilegeStore using GORM
type PrivilegeStore struct {
	crud[model.Privilege]
}

// FindByApplication returns the privileges owned by the application
func (s *PrivilegeStore) FindByApplication(ctx context.Context, applicationKey string) ([]*model.Privilege, error) {
	return query[model.Privilege](ctx, s.r.db, "application_id = ?", applicationKey)
}

// privilegePlan unlinks a privilege deleted on its own, with the same steps
// the application cascade applies to each of its privileges
func privilegePlan(tx *Repositories) *cascade.Plan[*model.Privilege] {
	with := func(fn func(context.Context, *Repositories, *model.Privilege) error) func(context.Context, *model.Privilege) error {
		return func(ctx context.Context, p *model.Privilege) error { return fn(ctx, tx, p) }
	}

	return &cascade.Plan[*model.Privilege]{
		Root: "privilege",
		Key:  func(p *model.Privilege) string { return p.ID },
		Relationships: []cascade.Relationship[*model.Privilege]{
			{Name: "roles", Referencer: "role", Mutation: cascade.Unlink, Apply: with(unlinkFromRoles)},
			{Name: "linked accounts", Referencer: "linked account", Mutation: cascade.Unlink, Apply: with(unlinkFromAccounts)},
		},
		Remove: removeRoot[model.Privilege](tx),
	}
}

func unlinkFromRoles(ctx context.Context, tx *Repositories, p *model.Privilege) error {
	roles, err := tx.Roles.FindByPrivilege(ctx, p.ID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if err := tx.db.WithContext(ctx).Model(role).Association("Privileges").Delete(p); err != nil {
			return fmt.Errorf("unlinking privilege %q from role %q: %w", p.ID, role.ID, err)
		}
	}
	return nil
}

func unlinkFromAccounts(ctx context.Context, tx *Repositories, p *model.Privilege) error {
	accounts, err := tx.LinkedAccounts.FindByPrivilege(ctx, p.ID)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if err := tx.db.WithContext(ctx).Model(account).Association("Privileges").Delete(p); err != nil {
			return fmt.Errorf("unlinking privilege %q from linked account %q: %w", p.ID, account.ID, err)
		}
	}
	return nil
}

func detachAndDelete(ctx context.Context, tx *Repositories, p *model.Privilege) error {
	p.ApplicationID = nil
	if err := saveOnly(ctx, tx.db, p); err != nil {
		return fmt.Errorf("detaching privilege %q: %w", p.ID, err)
	}
	return remove(ctx, tx.db, p)
}
