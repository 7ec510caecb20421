package gorm

import (
	"context"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
	"go.uber.org/zap"
)

var _ store.ConnInstanceStore = (*ConnInstanceStore)(nil)

// ConnInstanceStore implements store.ConnInstanceStore using GORM
type ConnInstanceStore struct {
	crud[model.ConnInstance]
}

// connInstancePlan deletes the resources of the connector, then the
// connector, and unregisters it once the deletion is committed
func connInstancePlan(tx *Repositories) *cascade.Plan[*model.ConnInstance] {
	return &cascade.Plan[*model.ConnInstance]{
		Root: "connector",
		Key:  func(c *model.ConnInstance) string { return c.ID },
		Relationships: []cascade.Relationship[*model.ConnInstance]{{
			Name:       "resources",
			Referencer: "external resource",
			Mutation:   cascade.DeleteReferrers,
			Apply: func(ctx context.Context, c *model.ConnInstance) error {
				resources, err := tx.Resources.FindByConnector(ctx, c.ID)
				if err != nil {
					return err
				}
				for _, res := range resources {
					if err := tx.Resources.Delete(ctx, res); err != nil {
						return err
					}
				}
				c.Resources = nil
				return nil
			},
		}},
		Remove: removeRoot[model.ConnInstance](tx),
		AfterCommit: []cascade.Hook[*model.ConnInstance]{{
			Name:     "registry",
			Target:   "live connector registry",
			Mutation: cascade.Unregister,
			Run: func(_ context.Context, c *model.ConnInstance) {
				if tx.registry == nil {
					return
				}
				n, err := tx.registry.Unregister(c.ID)
				if err != nil {
					logger.Log.Warn("unregistering connector", zap.String("connector", c.ID), zap.Error(err))
					return
				}
				logger.Log.Info("unregistered connector", zap.String("connector", c.ID), zap.Int("resources", n))
			},
		}},
	}
}

var _ store.ExternalResourceStore = (*ExternalResourceStore)(nil)

// ExternalResourceStore implements store.ExternalResourceStore using GORM
type ExternalResourceStore struct {
	crud[model.ExternalResource]
}

// Save stores the resource and registers it once committed
func (s *ExternalResourceStore) Save(ctx context.Context, res *model.ExternalResource) (*model.ExternalResource, error) {
	err := s.r.Transaction(ctx, func(tx *Repositories) error {
		if err := save(ctx, tx.db, res); err != nil {
			return err
		}
		tx.hooks.Add("resource "+res.ID+" registry", func(context.Context) {
			if tx.registry == nil {
				return
			}
			if err := tx.registry.Register(res); err != nil {
				logger.Log.Warn("registering resource", zap.String("resource", res.ID), zap.Error(err))
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// FindByConnector returns the resources served by the connector
func (s *ExternalResourceStore) FindByConnector(ctx context.Context, connectorKey string) ([]*model.ExternalResource, error) {
	return query[model.ExternalResource](ctx, s.r.db, "connector_id = ?", connectorKey)
}

func (s *ExternalResourceStore) FindByPolicy(ctx context.Context, policy *model.Policy) ([]*model.ExternalResource, error) {
	where, args := policyFilter(resourcePolicyRefs, policy)
	return query[model.ExternalResource](ctx, s.r.db, where, args...)
}

// externalResourcePlan deletes the accounts linked on the resource. The
// registry entry is dropped after commit; a resource missing from the
// registry is logged and skipped.
func externalResourcePlan(tx *Repositories) *cascade.Plan[*model.ExternalResource] {
	return &cascade.Plan[*model.ExternalResource]{
		Root: "resource",
		Key:  func(r *model.ExternalResource) string { return r.ID },
		Relationships: []cascade.Relationship[*model.ExternalResource]{{
			Name:       "linked accounts",
			Referencer: "linked account",
			Mutation:   cascade.DeleteReferrers,
			Apply: func(ctx context.Context, r *model.ExternalResource) error {
				accounts, err := tx.LinkedAccounts.FindByResource(ctx, r.ID)
				if err != nil {
					return err
				}
				for _, account := range accounts {
					if err := tx.LinkedAccounts.Delete(ctx, account); err != nil {
						return err
					}
				}
				return nil
			},
		}},
		Remove: removeRoot[model.ExternalResource](tx),
		AfterCommit: []cascade.Hook[*model.ExternalResource]{{
			Name:     "registry",
			Target:   "live connector registry",
			Mutation: cascade.Unregister,
			Run: func(_ context.Context, r *model.ExternalResource) {
				if tx.registry == nil {
					return
				}
				if _, err := tx.registry.UnregisterResource(r.ID); err != nil {
					logger.Log.Warn("unregistering resource", zap.String("resource", r.ID), zap.Error(err))
				}
			},
		}},
	}
}

// SyncRegistry registers every stored resource in the live registry and
// returns how many were registered
func (r *Repositories) SyncRegistry(ctx context.Context) (int, error) {
	if r.registry == nil {
		return 0, nil
	}
	resources, err := r.Resources.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, res := range resources {
		if err := r.registry.Register(res); err != nil {
			return 0, err
		}
	}
	logger.Log.Info("connector registry synced", zap.Int("resources", len(resources)))
	return len(resources), nil
}
