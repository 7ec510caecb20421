package gorm

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/logger"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
	"go.uber.org/zap"
)

var _ store.AuthModuleStore = (*AuthModuleStore)(nil)

// AuthModuleStore implements store.AuthModuleStore using GORM
type AuthModuleStore struct {
	crud[model.AuthModule]
}

// authModulePlan drops the module from every default AUTH policy conf
func authModulePlan(tx *Repositories) *cascade.Plan[*model.AuthModule] {
	return &cascade.Plan[*model.AuthModule]{
		Root: "auth module",
		Key:  func(m *model.AuthModule) string { return m.ID },
		Relationships: []cascade.Relationship[*model.AuthModule]{{
			Name:       "auth policies",
			Referencer: "AUTH policy with default conf",
			Mutation:   cascade.RewriteConf,
			Apply: func(ctx context.Context, m *model.AuthModule) error {
				policies, err := tx.Policies.FindByKind(ctx, model.PolicyAuth)
				if err != nil {
					return err
				}
				for _, p := range policies {
					confType, err := p.ConfType()
					if err != nil {
						return err
					}
					if confType != model.DefaultConfType {
						continue
					}
					changed, err := p.RemoveAuthModule(m.ID)
					if err != nil {
						return err
					}
					if !changed {
						continue
					}
					if err := saveOnly(ctx, tx.db, p); err != nil {
						return fmt.Errorf("saving policy %q: %w", p.ID, err)
					}
					logger.Log.Debug("removed auth module from policy", zap.String("module", m.ID), zap.String("policy", p.ID))
				}
				return nil
			},
		}},
		Remove: removeRoot[model.AuthModule](tx),
	}
}
