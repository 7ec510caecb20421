package gorm

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

var _ store.AnyTypeStore = (*AnyTypeStore)(nil)

// AnyTypeStore implements store.AnyTypeStore using GORM
type AnyTypeStore struct {
	crud[model.AnyType]
}

// FindBuiltin returns the USER or GROUP any type
func (s *AnyTypeStore) FindBuiltin(ctx context.Context, kind model.AnyTypeKind) (*model.AnyType, error) {
	return s.Find(ctx, string(kind))
}

func guardBuiltinAnyType(t *model.AnyType) error {
	if t.IsBuiltin() {
		return fmt.Errorf("%w: %s", store.ErrBuiltinAnyType, t.ID)
	}
	return nil
}

func anyTypePlan(tx *Repositories) *cascade.Plan[*model.AnyType] {
	return &cascade.Plan[*model.AnyType]{
		Root:   "any type",
		Key:    func(t *model.AnyType) string { return t.ID },
		Remove: removeRoot[model.AnyType](tx),
	}
}

var _ store.SRARouteStore = (*SRARouteStore)(nil)

// SRARouteStore implements store.SRARouteStore using GORM
type SRARouteStore struct {
	crud[model.SRARoute]
}

// FindAll returns the routes in serving order
func (s *SRARouteStore) FindAll(ctx context.Context) ([]*model.SRARoute, error) {
	var routes []*model.SRARoute
	err := s.r.db.WithContext(ctx).Order("route_order").Order("id").Find(&routes).Error
	return routes, err
}

func sraRoutePlan(tx *Repositories) *cascade.Plan[*model.SRARoute] {
	return &cascade.Plan[*model.SRARoute]{
		Root:   "route",
		Key:    func(r *model.SRARoute) string { return r.ID },
		Remove: removeRoot[model.SRARoute](tx),
	}
}
