package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/idrepo/pkg/cascade"
	"github.com/doodlesbykumbi/idrepo/pkg/kind"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

// record is the concrete storage representation of one attribute family for
// one owner kind
type record[A any, O any] struct {
	table string
	new   func() A
	all   func(q *gorm.DB) ([]A, error)
	owner func(ctx context.Context, db *gorm.DB, key string) (O, error)
}

type tabler interface {
	TableName() string
}

func attrRecord[A any, O any, T any, PT interface {
	*T
	tabler
}, OW any, POW interface {
	*OW
}](preload string, asAttr func(PT) A, asOwner func(POW) O) record[A, O] {
	return record[A, O]{
		table: PT(new(T)).TableName(),
		new:   func() A { return asAttr(PT(new(T))) },
		all: func(q *gorm.DB) ([]A, error) {
			var rows []PT
			if err := q.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]A, len(rows))
			for i, row := range rows {
				out[i] = asAttr(row)
			}
			return out, nil
		},
		owner: func(ctx context.Context, db *gorm.DB, key string) (O, error) {
			o, err := find[OW](ctx, db, key, preload)
			if err != nil {
				var zero O
				return zero, err
			}
			return asOwner(POW(o)), nil
		},
	}
}

func plain[T any, PT interface {
	*T
	tabler
	model.PlainAttr
}, OW any, POW interface {
	*OW
	model.Attributable
}]() record[model.PlainAttr, model.Attributable] {
	return attrRecord[model.PlainAttr, model.Attributable, T, PT, OW, POW]("PlainAttributes",
		func(a PT) model.PlainAttr { return a },
		func(o POW) model.Attributable { return o },
	)
}

func derived[T any, PT interface {
	*T
	tabler
	model.DerAttr
}, OW any, POW interface {
	*OW
	model.DerivedAttributable
}]() record[model.DerAttr, model.DerivedAttributable] {
	return attrRecord[model.DerAttr, model.DerivedAttributable, T, PT, OW, POW]("DerAttributes",
		func(a PT) model.DerAttr { return a },
		func(o POW) model.DerivedAttributable { return o },
	)
}

// plainAttrKinds resolves an owner kind to its plain attribute record.
// Declaration order is the resolution priority order.
var plainAttrKinds = kind.New("plain attribute",
	kind.Bind(model.OwnerGroup, plain[model.GPlainAttr, *model.GPlainAttr, model.Group, *model.Group]()),
	kind.Bind(model.OwnerAnyObject, plain[model.APlainAttr, *model.APlainAttr, model.AnyObject, *model.AnyObject]()),
	kind.Bind(model.OwnerMembership, plain[model.MPlainAttr, *model.MPlainAttr, model.Membership, *model.Membership]()),
	kind.Bind(model.OwnerUser, plain[model.UPlainAttr, *model.UPlainAttr, model.User, *model.User]()),
	kind.Bind(model.OwnerConfiguration, plain[model.CPlainAttr, *model.CPlainAttr, model.Conf, *model.Conf]()),
)

// derAttrKinds resolves an owner kind to its derived attribute record.
// Configuration has no derived attributes.
var derAttrKinds = kind.New("derived attribute",
	kind.Bind(model.OwnerGroup, derived[model.GDerAttr, *model.GDerAttr, model.Group, *model.Group]()),
	kind.Bind(model.OwnerAnyObject, derived[model.ADerAttr, *model.ADerAttr, model.AnyObject, *model.AnyObject]()),
	kind.Bind(model.OwnerMembership, derived[model.MDerAttr, *model.MDerAttr, model.Membership, *model.Membership]()),
	kind.Bind(model.OwnerUser, derived[model.UDerAttr, *model.UDerAttr, model.User, *model.User]()),
)

// PlainAttrTable returns the table holding plain attributes of ownerKind
func PlainAttrTable(ownerKind model.OwnerKind) (string, error) {
	rec, err := plainAttrKinds.Resolve(ownerKind)
	return rec.table, err
}

// DerAttrTable returns the table holding derived attributes of ownerKind
func DerAttrTable(ownerKind model.OwnerKind) (string, error) {
	rec, err := derAttrKinds.Resolve(ownerKind)
	return rec.table, err
}

// PlainAttrOwnerKinds returns the owner kinds having plain attributes
func PlainAttrOwnerKinds() []model.OwnerKind {
	return plainAttrKinds.Kinds()
}

// DerAttrOwnerKinds returns the owner kinds having derived attributes
func DerAttrOwnerKinds() []model.OwnerKind {
	return derAttrKinds.Kinds()
}

type keyed interface {
	GetKey() uint64
	GetOwnerKey() string
}

// findAttr loads the attribute and, when its owner exists, returns the
// instance held by the owner's collection so owner and attribute are linked
func findAttr[A keyed, O any](ctx context.Context, db *gorm.DB, rec record[A, O], key uint64, collection func(O) []A) (A, error) {
	var zero A
	attr := rec.new()
	if err := db.WithContext(ctx).Where("id = ?", key).Take(attr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("%w: %s %d", store.ErrNotFound, rec.table, key)
		}
		return zero, err
	}

	owner, err := rec.owner(ctx, db, attr.GetOwnerKey())
	if errors.Is(err, store.ErrNotFound) {
		return attr, nil
	}
	if err != nil {
		return zero, err
	}
	for _, held := range collection(owner) {
		if held.GetKey() == key {
			return held, nil
		}
	}
	return attr, nil
}

var _ store.PlainAttrStore = (*PlainAttrStore)(nil)

// PlainAttrStore implements store.PlainAttrStore using GORM
type PlainAttrStore struct {
	r *Repositories
}

func (s *PlainAttrStore) Find(ctx context.Context, key uint64, ownerKind model.OwnerKind) (model.PlainAttr, error) {
	rec, err := plainAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return findAttr(ctx, s.r.db, rec, key, func(o model.Attributable) []model.PlainAttr { return o.PlainAttrs() })
}

func (s *PlainAttrStore) FindAll(ctx context.Context, ownerKind model.OwnerKind) ([]model.PlainAttr, error) {
	rec, err := plainAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return rec.all(s.r.db.WithContext(ctx))
}

func (s *PlainAttrStore) FindByOwner(ctx context.Context, ownerKind model.OwnerKind, ownerKey string) ([]model.PlainAttr, error) {
	rec, err := plainAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return rec.all(s.r.db.WithContext(ctx).Where("owner_id = ?", ownerKey))
}

func (s *PlainAttrStore) Save(ctx context.Context, attr model.PlainAttr) (model.PlainAttr, error) {
	if _, err := plainAttrKinds.Resolve(attr.OwnerKind()); err != nil {
		return nil, err
	}
	if owner := attr.GetOwner(); owner != nil && owner.OwnerKind() != attr.OwnerKind() {
		return nil, fmt.Errorf("%w: %s attribute owned by %s", store.ErrOwnerKindMismatch, attr.OwnerKind(), owner.OwnerKind())
	}
	if err := saveOnly(ctx, s.r.db, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

// Delete detaches attr from its loaded owner before removing the row. A
// failed delete leaves the owner without attr in memory; reload the owner
// before using it again.
func (s *PlainAttrStore) Delete(ctx context.Context, attr model.PlainAttr) error {
	if _, err := plainAttrKinds.Resolve(attr.OwnerKind()); err != nil {
		return err
	}
	return s.r.Transaction(ctx, func(tx *Repositories) error {
		return plainAttrPlan(tx).Run(ctx, attr, tx.hooks)
	})
}

func (s *PlainAttrStore) DeleteByKey(ctx context.Context, key uint64, ownerKind model.OwnerKind) error {
	if _, err := plainAttrKinds.Resolve(ownerKind); err != nil {
		return err
	}
	return s.r.Transaction(ctx, func(tx *Repositories) error {
		attr, err := tx.PlainAttrs.Find(ctx, key, ownerKind)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return plainAttrPlan(tx).Run(ctx, attr, tx.hooks)
	})
}

func plainAttrPlan(tx *Repositories) *cascade.Plan[model.PlainAttr] {
	return &cascade.Plan[model.PlainAttr]{
		Root: "plain attribute",
		Key:  func(a model.PlainAttr) string { return fmt.Sprint(a.GetKey()) },
		Relationships: []cascade.Relationship[model.PlainAttr]{{
			Name:       "owner",
			Referencer: "owner attribute collection",
			Mutation:   cascade.Unlink,
			Apply: func(_ context.Context, a model.PlainAttr) error {
				if owner := a.GetOwner(); owner != nil {
					owner.RemovePlainAttr(a)
				}
				return nil
			},
		}},
		Remove: func(ctx context.Context, a model.PlainAttr) error {
			if a.GetKey() == 0 {
				return nil
			}
			return remove(ctx, tx.db, a)
		},
	}
}

var _ store.DerAttrStore = (*DerAttrStore)(nil)

// DerAttrStore implements store.DerAttrStore using GORM
type DerAttrStore struct {
	r *Repositories
}

func (s *DerAttrStore) Find(ctx context.Context, key uint64, ownerKind model.OwnerKind) (model.DerAttr, error) {
	rec, err := derAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return findAttr(ctx, s.r.db, rec, key, func(o model.DerivedAttributable) []model.DerAttr { return o.DerAttrs() })
}

func (s *DerAttrStore) FindAll(ctx context.Context, ownerKind model.OwnerKind) ([]model.DerAttr, error) {
	rec, err := derAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return rec.all(s.r.db.WithContext(ctx))
}

func (s *DerAttrStore) FindByOwner(ctx context.Context, ownerKind model.OwnerKind, ownerKey string) ([]model.DerAttr, error) {
	rec, err := derAttrKinds.Resolve(ownerKind)
	if err != nil {
		return nil, err
	}
	return rec.all(s.r.db.WithContext(ctx).Where("owner_id = ?", ownerKey))
}

func (s *DerAttrStore) Save(ctx context.Context, attr model.DerAttr) (model.DerAttr, error) {
	if _, err := derAttrKinds.Resolve(attr.OwnerKind()); err != nil {
		return nil, err
	}
	if owner := attr.GetOwner(); owner != nil && owner.OwnerKind() != attr.OwnerKind() {
		return nil, fmt.Errorf("%w: %s attribute owned by %s", store.ErrOwnerKindMismatch, attr.OwnerKind(), owner.OwnerKind())
	}
	if err := saveOnly(ctx, s.r.db, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

// Delete detaches attr from its loaded owner before removing the row. A
// failed delete leaves the owner without attr in memory; reload the owner
// before using it again.
func (s *DerAttrStore) Delete(ctx context.Context, attr model.DerAttr) error {
	if _, err := derAttrKinds.Resolve(attr.OwnerKind()); err != nil {
		return err
	}
	return s.r.Transaction(ctx, func(tx *Repositories) error {
		return derAttrPlan(tx).Run(ctx, attr, tx.hooks)
	})
}

func (s *DerAttrStore) DeleteByKey(ctx context.Context, key uint64, ownerKind model.OwnerKind) error {
	if _, err := derAttrKinds.Resolve(ownerKind); err != nil {
		return err
	}
	return s.r.Transaction(ctx, func(tx *Repositories) error {
		attr, err := tx.DerAttrs.Find(ctx, key, ownerKind)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return derAttrPlan(tx).Run(ctx, attr, tx.hooks)
	})
}

func derAttrPlan(tx *Repositories) *cascade.Plan[model.DerAttr] {
	return &cascade.Plan[model.DerAttr]{
		Root: "derived attribute",
		Key:  func(a model.DerAttr) string { return fmt.Sprint(a.GetKey()) },
		Relationships: []cascade.Relationship[model.DerAttr]{{
			Name:       "owner",
			Referencer: "owner attribute collection",
			Mutation:   cascade.Unlink,
			Apply: func(_ context.Context, a model.DerAttr) error {
				if owner := a.GetOwner(); owner != nil {
					owner.RemoveDerAttr(a)
				}
				return nil
			},
		}},
		Remove: func(ctx context.Context, a model.DerAttr) error {
			if a.GetKey() == 0 {
				return nil
			}
			return remove(ctx, tx.db, a)
		},
	}
}
