package store

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

// Repository is the contract shared by repositories of string-keyed entities
type Repository[T any] interface {
	// Find returns the entity with the given key or ErrNotFound
	Find(ctx context.Context, key string) (*T, error)

	// FindAll returns every entity, in no particular order
	FindAll(ctx context.Context) ([]*T, error)

	// Save inserts or updates the entity by primary key
	Save(ctx context.Context, entity *T) (*T, error)

	// Delete runs the entity's cascade and removes it
	Delete(ctx context.Context, entity *T) error

	// DeleteByKey loads the entity and deletes it like Delete. An absent key
	// is a no-op.
	DeleteByKey(ctx context.Context, key string) error
}

// PlainAttrStore stores plain attributes of every owner kind
type PlainAttrStore interface {
	Find(ctx context.Context, key uint64, ownerKind model.OwnerKind) (model.PlainAttr, error)
	FindAll(ctx context.Context, ownerKind model.OwnerKind) ([]model.PlainAttr, error)
	FindByOwner(ctx context.Context, ownerKind model.OwnerKind, ownerKey string) ([]model.PlainAttr, error)
	Save(ctx context.Context, attr model.PlainAttr) (model.PlainAttr, error)

	// Delete detaches the attribute from its owner's collection, when the
	// owner is loaded, and removes it. The detach is not undone if the
	// delete fails, so the caller must reload the owner after an error.
	Delete(ctx context.Context, attr model.PlainAttr) error
	DeleteByKey(ctx context.Context, key uint64, ownerKind model.OwnerKind) error
}

// DerAttrStore stores derived attributes of every owner kind but
// configuration
type DerAttrStore interface {
	Find(ctx context.Context, key uint64, ownerKind model.OwnerKind) (model.DerAttr, error)
	FindAll(ctx context.Context, ownerKind model.OwnerKind) ([]model.DerAttr, error)
	FindByOwner(ctx context.Context, ownerKind model.OwnerKind, ownerKey string) ([]model.DerAttr, error)
	Save(ctx context.Context, attr model.DerAttr) (model.DerAttr, error)
	// Delete detaches the attribute from its owner's collection, when the
	// owner is loaded, and removes it. The detach is not undone if the
	// delete fails, so the caller must reload the owner after an error.
	Delete(ctx context.Context, attr model.DerAttr) error
	DeleteByKey(ctx context.Context, key uint64, ownerKind model.OwnerKind) error
}

type UserStore interface {
	Repository[model.User]
	FindBySecurityQuestion(ctx context.Context, questionKey string) ([]*model.User, error)
}

type RoleStore interface {
	Repository[model.Role]
	FindByPrivilege(ctx context.Context, privilegeKey string) ([]*model.Role, error)
}

type LinkedAccountStore interface {
	Repository[model.LinkedAccount]
	FindByPrivilege(ctx context.Context, privilegeKey string) ([]*model.LinkedAccount, error)
	FindByResource(ctx context.Context, resourceKey string) ([]*model.LinkedAccount, error)
}

type ApplicationStore interface {
	Repository[model.Application]
}

type PrivilegeStore interface {
	Repository[model.Privilege]
	FindByApplication(ctx context.Context, applicationKey string) ([]*model.Privilege, error)
}

type AuthModuleStore interface {
	Repository[model.AuthModule]
}

type PolicyStore interface {
	Repository[model.Policy]
	FindByKind(ctx context.Context, kind model.PolicyKind) ([]*model.Policy, error)
}

type RealmStore interface {
	Repository[model.Realm]

	// FindByPolicy returns the realms referring to the policy. For account
	// and password policies it also returns the descendants inheriting it.
	FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.Realm, error)
	// FindDescendants returns every realm below realm, deepest first
	FindDescendants(ctx context.Context, realm *model.Realm) ([]*model.Realm, error)
}

type ClientAppStore interface {
	Repository[model.ClientApp]
	FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.ClientApp, error)
}

type SecurityQuestionStore interface {
	Repository[model.SecurityQuestion]
}

type ConnInstanceStore interface {
	Repository[model.ConnInstance]
}

type ExternalResourceStore interface {
	Repository[model.ExternalResource]
	FindByConnector(ctx context.Context, connectorKey string) ([]*model.ExternalResource, error)
	FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.ExternalResource, error)
}

type ImplementationStore interface {
	Repository[model.Implementation]
	FindByType(ctx context.Context, implType string) ([]*model.Implementation, error)
	// Load returns the loaded form of the implementation, through the
	// implementation cache when one is configured
	Load(ctx context.Context, key string) (*implcache.Loaded, error)
}

type BatchStore interface {
	Repository[model.Batch]

	// DeleteExpired removes every batch whose expiry is strictly before now
	// and returns how many were removed
	DeleteExpired(ctx context.Context) (int64, error)
}

type AnyTypeStore interface {
	Repository[model.AnyType]
}

type SRARouteStore interface {
	Repository[model.SRARoute]
}

type ReportStore interface {
	Repository[model.Report]
	FindExecutions(ctx context.Context, reportKey string) ([]*model.ReportExec, error)
}

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies database connectivity
	CheckConnectivity(ctx context.Context) error
}
