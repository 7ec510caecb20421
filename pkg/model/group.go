package model

import "gorm.io/gorm"

type Group struct {
	ID      string  `gorm:"column:id;primaryKey"`
	Name    string  `gorm:"column:name;uniqueIndex;not null"`
	RealmID *string `gorm:"column:realm_id"`

	PlainAttributes []*GPlainAttr `gorm:"foreignKey:OwnerID"`
	DerAttributes   []*GDerAttr   `gorm:"foreignKey:OwnerID"`
}

func (Group) TableName() string {
	return "groups"
}

func (*Group) OwnerKind() OwnerKind { return OwnerGroup }
func (g *Group) GetKey() string     { return g.ID }

func (g *Group) PlainAttrs() []PlainAttr             { return plainAttrs(g.PlainAttributes) }
func (g *Group) AddPlainAttr(attr PlainAttr) error   { return addPlain(g, &g.PlainAttributes, attr) }
func (g *Group) RemovePlainAttr(attr PlainAttr) bool { return removePlain(&g.PlainAttributes, attr) }
func (g *Group) DerAttrs() []DerAttr                 { return derAttrs(g.DerAttributes) }
func (g *Group) AddDerAttr(attr DerAttr) error       { return addDer(g, &g.DerAttributes, attr) }
func (g *Group) RemoveDerAttr(attr DerAttr) bool     { return removeDer(&g.DerAttributes, attr) }

func (g *Group) AfterFind(tx *gorm.DB) error {
	linkPlain(g, g.PlainAttributes)
	linkDer(g, g.DerAttributes)
	return nil
}

// AnyObject is an entity of a custom any-type (printer, device...)
type AnyObject struct {
	ID      string  `gorm:"column:id;primaryKey"`
	Name    string  `gorm:"column:name;not null"`
	TypeID  string  `gorm:"column:type_id;index;not null"`
	RealmID *string `gorm:"column:realm_id"`

	PlainAttributes []*APlainAttr `gorm:"foreignKey:OwnerID"`
	DerAttributes   []*ADerAttr   `gorm:"foreignKey:OwnerID"`
}

func (AnyObject) TableName() string {
	return "any_objects"
}

func (*AnyObject) OwnerKind() OwnerKind { return OwnerAnyObject }
func (a *AnyObject) GetKey() string     { return a.ID }

func (a *AnyObject) PlainAttrs() []PlainAttr             { return plainAttrs(a.PlainAttributes) }
func (a *AnyObject) AddPlainAttr(attr PlainAttr) error   { return addPlain(a, &a.PlainAttributes, attr) }
func (a *AnyObject) RemovePlainAttr(attr PlainAttr) bool { return removePlain(&a.PlainAttributes, attr) }
func (a *AnyObject) DerAttrs() []DerAttr                 { return derAttrs(a.DerAttributes) }
func (a *AnyObject) AddDerAttr(attr DerAttr) error       { return addDer(a, &a.DerAttributes, attr) }
func (a *AnyObject) RemoveDerAttr(attr DerAttr) bool     { return removeDer(&a.DerAttributes, attr) }

func (a *AnyObject) AfterFind(tx *gorm.DB) error {
	linkPlain(a, a.PlainAttributes)
	linkDer(a, a.DerAttributes)
	return nil
}

// Membership is a user's membership of a group. Memberships carry their own
// attributes.
type Membership struct {
	ID      string `gorm:"column:id;primaryKey"`
	UserID  string `gorm:"column:user_id;index;not null"`
	GroupID string `gorm:"column:group_id;index;not null"`

	PlainAttributes []*MPlainAttr `gorm:"foreignKey:OwnerID"`
	DerAttributes   []*MDerAttr   `gorm:"foreignKey:OwnerID"`
}

func (Membership) TableName() string {
	return "memberships"
}

func (*Membership) OwnerKind() OwnerKind { return OwnerMembership }
func (m *Membership) GetKey() string     { return m.ID }

func (m *Membership) PlainAttrs() []PlainAttr             { return plainAttrs(m.PlainAttributes) }
func (m *Membership) AddPlainAttr(attr PlainAttr) error   { return addPlain(m, &m.PlainAttributes, attr) }
func (m *Membership) RemovePlainAttr(attr PlainAttr) bool { return removePlain(&m.PlainAttributes, attr) }
func (m *Membership) DerAttrs() []DerAttr                 { return derAttrs(m.DerAttributes) }
func (m *Membership) AddDerAttr(attr DerAttr) error       { return addDer(m, &m.DerAttributes, attr) }
func (m *Membership) RemoveDerAttr(attr DerAttr) bool     { return removeDer(&m.DerAttributes, attr) }

func (m *Membership) AfterFind(tx *gorm.DB) error {
	linkPlain(m, m.PlainAttributes)
	linkDer(m, m.DerAttributes)
	return nil
}

// Conf is the platform configuration. It owns plain attributes only.
type Conf struct {
	ID string `gorm:"column:id;primaryKey"`

	PlainAttributes []*CPlainAttr `gorm:"foreignKey:OwnerID"`
}

func (Conf) TableName() string {
	return "confs"
}

func (*Conf) OwnerKind() OwnerKind { return OwnerConfiguration }
func (c *Conf) GetKey() string     { return c.ID }

func (c *Conf) PlainAttrs() []PlainAttr             { return plainAttrs(c.PlainAttributes) }
func (c *Conf) AddPlainAttr(attr PlainAttr) error   { return addPlain(c, &c.PlainAttributes, attr) }
func (c *Conf) RemovePlainAttr(attr PlainAttr) bool { return removePlain(&c.PlainAttributes, attr) }

func (c *Conf) AfterFind(tx *gorm.DB) error {
	linkPlain(c, c.PlainAttributes)
	return nil
}
