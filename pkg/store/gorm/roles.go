package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.RoleStore = (*RoleStore)(nil)

// RoleStore implements store.RoleStore using GORM
type RoleStore struct {
	crud[model.Role]
}

// FindByPrivilege returns the roles holding the privilege, with their
// privileges loaded
func (s *RoleStore) FindByPrivilege(ctx context.Context, privilegeKey string) ([]*model.Role, error) {
	var roles []*model.Role
	err := s.r.db.WithContext(ctx).
		Preload("Privileges").
		Joins("JOIN role_privileges ON role_privileges.role_id = roles.id").
		Where("role_privileges.privilege_id = ?", privilegeKey).
		Find(&roles).Error
	return roles, err
}

// rolePlan drops the role's privilege links with the role
func rolePlan(tx *Repositories) *cascade.Plan[*model.Role] {
	return &cascade.Plan[*model.Role]{
		Root: "role",
		Key:  func(r *model.Role) string { return r.ID },
		Relationships: []cascade.Relationship[*model.Role]{{
			Name:       "privilege links",
			Referencer: "role_privileges",
			Mutation:   cascade.Unlink,
			Apply: func(ctx context.Context, r *model.Role) error {
				return tx.db.WithContext(ctx).Model(r).Association("Privileges").Clear()
			},
		}},
		Remove: removeRoot[model.Role](tx),
	}
}

var _ store.LinkedAccountStore = (*LinkedAccountStore)(nil)

// LinkedAccountStore implements store.LinkedAccountStore using GORM
type LinkedAccountStore struct {
	crud[model.LinkedAccount]
}

// FindByPrivilege returns the linked accounts holding the privilege, with
// their privileges loaded
func (s *LinkedAccountStore) FindByPrivilege(ctx context.Context, privilegeKey string) ([]*model.LinkedAccount, error) {
	var accounts []*model.LinkedAccount
	err := s.r.db.WithContext(ctx).
		Preload("Privileges").
		Joins("JOIN linked_account_privileges ON linked_account_privileges.linked_account_id = linked_accounts.id").
		Where("linked_account_privileges.privilege_id = ?", privilegeKey).
		Find(&accounts).Error
	return accounts, err
}

// FindByResource returns the accounts linked on the resource
func (s *LinkedAccountStore) FindByResource(ctx context.Context, resourceKey string) ([]*model.LinkedAccount, error) {
	return query[model.LinkedAccount](ctx, s.r.db, "resource_id = ?", resourceKey)
}

func linkedAccountPlan(tx *Repositories) *cascade.Plan[*model.LinkedAccount] {
	return &cascade.Plan[*model.LinkedAccount]{
		Root: "linked account",
		Key:  func(a *model.LinkedAccount) string { return a.ID },
		Relationships: []cascade.Relationship[*model.LinkedAccount]{{
			Name:       "privilege links",
			Referencer: "linked_account_privileges",
			Mutation:   cascade.Unlink,
			Apply: func(ctx context.Context, a *model.LinkedAccount) error {
				return tx.db.WithContext(ctx).Model(a).Association("Privileges").Clear()
			},
		}},
		Remove: removeRoot[model.LinkedAccount](tx),
	}
}
