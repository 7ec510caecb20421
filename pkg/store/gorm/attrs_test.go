package gorm

import (
	"errors"

	"github.com/doodlesbykumbi/idrepo/pkg/kind"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
	"github.com/doodlesbykumbi/idrepo/pkg/store"
)

func (s *StoreSuite) TestAttrTablesAreTotal() {
	want := map[model.OwnerKind]string{
		model.OwnerUser:          "u_plain_attrs",
		model.OwnerGroup:         "g_plain_attrs",
		model.OwnerAnyObject:     "a_plain_attrs",
		model.OwnerMembership:    "m_plain_attrs",
		model.OwnerConfiguration: "c_plain_attrs",
	}
	for _, k := range model.OwnerKindValues() {
		for i := 0; i < 3; i++ {
			table, err := PlainAttrTable(k)
			s.NoError(err)
			s.Equal(want[k], table)
		}
	}
	s.Equal([]model.OwnerKind{model.OwnerGroup, model.OwnerAnyObject, model.OwnerMembership, model.OwnerUser, model.OwnerConfiguration}, PlainAttrOwnerKinds())

	table, err := DerAttrTable(model.OwnerMembership)
	s.NoError(err)
	s.Equal("m_der_attrs", table)
	s.Len(DerAttrOwnerKinds(), 4)
}

func (s *StoreSuite) TestAttrUnsupportedKind() {
	for _, k := range []model.OwnerKind{0, 42} {
		_, err := PlainAttrTable(k)
		s.ErrorIs(err, store.ErrUnsupportedKind)

		_, err = s.repos.PlainAttrs.Find(s.ctx, 1, k)
		s.ErrorIs(err, kind.ErrUnsupported)
		s.False(errors.Is(err, store.ErrNotFound))

		s.ErrorIs(s.repos.PlainAttrs.DeleteByKey(s.ctx, 1, k), store.ErrUnsupportedKind)
	}

	_, err := s.repos.DerAttrs.FindAll(s.ctx, model.OwnerConfiguration)
	var uerr *kind.UnsupportedError
	s.Require().ErrorAs(err, &uerr)
	s.Equal("derived attribute", uerr.Family)
	s.Equal("configuration", uerr.Kind)
}

func (s *StoreSuite) TestAttrRoutesToOwnerKindRecord() {
	s.create(
		&model.User{ID: "u1", Username: "rossini"},
		&model.Group{ID: "g1", Name: "root"},
		&model.AnyObject{ID: "p1", Name: "printer", TypeID: "PRINTER"},
		&model.UPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 5, OwnerID: "u1", SchemaKey: "email", Value: "user"}},
		&model.GPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 5, OwnerID: "g1", SchemaKey: "email", Value: "group"}},
		&model.APlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 5, OwnerID: "p1", SchemaKey: "email", Value: "any"}},
	)

	for _, order := range [][]model.OwnerKind{
		{model.OwnerGroup, model.OwnerUser, model.OwnerAnyObject},
		{model.OwnerAnyObject, model.OwnerUser, model.OwnerGroup},
	} {
		for _, k := range order {
			attr, err := s.repos.PlainAttrs.Find(s.ctx, 5, k)
			s.Require().NoError(err)
			s.Equal(k, attr.OwnerKind())
		}
	}

	attr, err := s.repos.PlainAttrs.Find(s.ctx, 5, model.OwnerGroup)
	s.Require().NoError(err)
	s.IsType(&model.GPlainAttr{}, attr)
	s.Equal("group", attr.GetValue())
	s.Equal("g1", attr.GetOwner().GetKey())

	all, err := s.repos.PlainAttrs.FindAll(s.ctx, model.OwnerGroup)
	s.Require().NoError(err)
	s.Len(all, 1)
	s.IsType(&model.GPlainAttr{}, all[0])
}

func (s *StoreSuite) TestAttrFindNotFound() {
	_, err := s.repos.PlainAttrs.Find(s.ctx, 99, model.OwnerUser)
	s.ErrorIs(err, store.ErrNotFound)
}

func (s *StoreSuite) TestAttrSaveAndFindByOwner() {
	s.create(&model.Membership{ID: "m1", UserID: "u1", GroupID: "g1"})
	m := &model.Membership{ID: "m1"}
	attr := &model.MPlainAttr{PlainAttrBase: model.PlainAttrBase{SchemaKey: "role", Value: "admin"}}
	s.Require().NoError(m.AddPlainAttr(attr))

	saved, err := s.repos.PlainAttrs.Save(s.ctx, attr)
	s.Require().NoError(err)
	s.NotZero(saved.GetKey())

	attr.Value = "auditor"
	_, err = s.repos.PlainAttrs.Save(s.ctx, attr)
	s.Require().NoError(err)

	attrs, err := s.repos.PlainAttrs.FindByOwner(s.ctx, model.OwnerMembership, "m1")
	s.Require().NoError(err)
	s.Require().Len(attrs, 1)
	s.Equal("auditor", attrs[0].GetValue())
}

func (s *StoreSuite) TestAttrDeleteDetachesFromOwner() {
	s.create(
		&model.Group{ID: "g1", Name: "root"},
		&model.GPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 1, OwnerID: "g1", SchemaKey: "icon"}},
		&model.GPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 2, OwnerID: "g1", SchemaKey: "title"}},
	)

	attr, err := s.repos.PlainAttrs.Find(s.ctx, 1, model.OwnerGroup)
	s.Require().NoError(err)
	owner := attr.GetOwner()
	s.Require().NotNil(owner)
	s.Len(owner.PlainAttrs(), 2)

	s.Require().NoError(s.repos.PlainAttrs.Delete(s.ctx, attr))

	s.Len(owner.PlainAttrs(), 1)
	s.Equal(uint64(2), owner.PlainAttrs()[0].GetKey())
	s.Equal(int64(0), s.count(&model.GPlainAttr{}, "id = ?", 1))
	s.Equal(int64(1), s.count(&model.GPlainAttr{}, ""))
}

func (s *StoreSuite) TestAttrDeleteByKeyIsIdempotent() {
	s.create(
		&model.User{ID: "u1", Username: "rossini"},
		&model.UDerAttr{DerAttrBase: model.DerAttrBase{ID: 3, OwnerID: "u1", SchemaKey: "cn"}},
	)

	s.Require().NoError(s.repos.DerAttrs.DeleteByKey(s.ctx, 3, model.OwnerUser))
	s.Require().NoError(s.repos.DerAttrs.DeleteByKey(s.ctx, 3, model.OwnerUser))
	s.Require().NoError(s.repos.PlainAttrs.DeleteByKey(s.ctx, 404, model.OwnerConfiguration))

	s.Equal(int64(0), s.count(&model.UDerAttr{}, ""))
}

func (s *StoreSuite) TestAttrDeleteWithoutOwner() {
	s.create(&model.CPlainAttr{PlainAttrBase: model.PlainAttrBase{ID: 9, OwnerID: "missing"}})

	attr, err := s.repos.PlainAttrs.Find(s.ctx, 9, model.OwnerConfiguration)
	s.Require().NoError(err)
	s.Nil(attr.GetOwner())

	s.Require().NoError(s.repos.PlainAttrs.Delete(s.ctx, attr))
	s.Equal(int64(0), s.count(&model.CPlainAttr{}, ""))
}
