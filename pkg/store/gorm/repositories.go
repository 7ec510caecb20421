package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/connector"
	"github.com/doodlesbykumbi/idrepo/pkg/implcache"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

// Repositories bundles every repository bound to one database handle. Inside
// Transaction the bundle is bound to the transaction, so every repository a
// cascade reaches shares it.
type Repositories struct {
	db        *gorm.DB
	hooks     *cascade.Hooks
	registry  *connector.Registry
	implCache *implcache.Cache
	now       func() time.Time

	PlainAttrs        *PlainAttrStore
	DerAttrs          *DerAttrStore
	Users             *UserStore
	Roles             *RoleStore
	LinkedAccounts    *LinkedAccountStore
	Applications      *ApplicationStore
	Privileges        *PrivilegeStore
	AuthModules       *AuthModuleStore
	Policies          *PolicyStore
	Realms            *RealmStore
	ClientApps        *ClientAppStore
	SecurityQuestions *SecurityQuestionStore
	Connectors        *ConnInstanceStore
	Resources         *ExternalResourceStore
	Implementations   *ImplementationStore
	Batches           *BatchStore
	AnyTypes          *AnyTypeStore
	Routes            *SRARouteStore
	Reports           *ReportStore
	Health            *HealthStore
}

// Option configures the collaborators of a Repositories
type Option func(*Repositories)

// WithRegistry sets the live connector registry kept in step with connector
// and resource deletions
func WithRegistry(registry *connector.Registry) Option {
	return func(r *Repositories) { r.registry = registry }
}

// WithImplementationCache sets the cache purged when implementations change
func WithImplementationCache(cache *implcache.Cache) Option {
	return func(r *Repositories) { r.implCache = cache }
}

// WithClock replaces the clock used to reap expired batches
func WithClock(now func() time.Time) Option {
	return func(r *Repositories) { r.now = now }
}

// New creates the repositories over db
func New(db *gorm.DB, opts ...Option) *Repositories {
	r := &Repositories{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r.bind(db, nil)
}

// Transaction runs fn with repositories bound to a single transaction. Hooks
// queued by cascades run once the transaction commits and are dropped if it
// rolls back. Calling Transaction on a bundle that is already bound to a
// transaction joins it.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	if r.hooks != nil {
		return fn(r)
	}

	hooks := &cascade.Hooks{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.bind(tx, hooks))
	})
	if err != nil {
		hooks.Discard()
		return err
	}
	hooks.Run(ctx)
	return nil
}

// DB returns the handle the bundle is bound to
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

func (r *Repositories) bind(db *gorm.DB, hooks *cascade.Hooks) *Repositories {
	b := &Repositories{
		db:        db,
		hooks:     hooks,
		registry:  r.registry,
		implCache: r.implCache,
		now:       r.now,
	}

	b.PlainAttrs = &PlainAttrStore{r: b}
	b.DerAttrs = &DerAttrStore{r: b}
	b.Users = &UserStore{crud[model.User]{r: b, plan: userPlan, preload: []string{"LinkedAccounts.Privileges", "PlainAttributes", "DerAttributes"}}}
	b.Roles = &RoleStore{crud[model.Role]{r: b, plan: rolePlan, preload: []string{"Privileges"}}}
	b.LinkedAccounts = &LinkedAccountStore{crud[model.LinkedAccount]{r: b, plan: linkedAccountPlan, preload: []string{"Privileges"}}}
	b.Applications = &ApplicationStore{crud[model.Application]{r: b, plan: applicationPlan, preload: []string{"Privileges"}}}
	b.Privileges = &PrivilegeStore{crud[model.Privilege]{r: b, plan: privilegePlan}}
	b.AuthModules = &AuthModuleStore{crud[model.AuthModule]{r: b, plan: authModulePlan}}
	b.Policies = &PolicyStore{crud[model.Policy]{r: b, plan: policyPlan}}
	b.Realms = &RealmStore{crud[model.Realm]{r: b, plan: realmPlan, guard: guardRootRealm}}
	b.ClientApps = &ClientAppStore{crud[model.ClientApp]{r: b, plan: clientAppPlan}}
	b.SecurityQuestions = &SecurityQuestionStore{crud[model.SecurityQuestion]{r: b, plan: securityQuestionPlan}}
	b.Connectors = &ConnInstanceStore{crud[model.ConnInstance]{r: b, plan: connInstancePlan, preload: []string{"Resources"}}}
	b.Resources = &ExternalResourceStore{crud[model.ExternalResource]{r: b, plan: externalResourcePlan}}
	b.Implementations = &ImplementationStore{crud[model.Implementation]{r: b, plan: implementationPlan}}
	b.Batches = &BatchStore{crud[model.Batch]{r: b, plan: batchPlan}}
	b.AnyTypes = &AnyTypeStore{crud[model.AnyType]{r: b, plan: anyTypePlan, guard: guardBuiltinAnyType}}
	b.Routes = &SRARouteStore{crud[model.SRARoute]{r: b, plan: sraRoutePlan}}
	b.Reports = &ReportStore{crud[model.Report]{r: b, plan: reportPlan}}
	b.Health = &HealthStore{db: db}
	return b
}

// Cascades returns the cascade rows of every repository, in a
// stable order
func Cascades() []cascade.Spec {
	var rows []cascade.Spec
	rows = append(rows, plainAttrPlan(nil).Spec()...)
	rows = append(rows, derAttrPlan(nil).Spec()...)
	rows = append(rows, applicationPlan(nil).Spec()...)
	rows = append(rows, privilegePlan(nil).Spec()...)
	rows = append(rows, authModulePlan(nil).Spec()...)
	rows = append(rows, securityQuestionPlan(nil).Spec()...)
	rows = append(rows, connInstancePlan(nil).Spec()...)
	rows = append(rows, externalResourcePlan(nil).Spec()...)
	rows = append(rows, implementationPlan(nil).Spec()...)
	rows = append(rows, policyPlan(nil).Spec()...)
	rows = append(rows, realmPlan(nil).Spec()...)
	rows = append(rows, reportPlan(nil).Spec()...)
	rows = append(rows, userPlan(nil).Spec()...)
	rows = append(rows, rolePlan(nil).Spec()...)
	rows = append(rows, linkedAccountPlan(nil).Spec()...)
	return rows
}
