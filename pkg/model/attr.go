package model

// PlainAttr is an attribute holding a literal value. Each owner kind has its
// own concrete record type.
type PlainAttr interface {
	GetKey() uint64
	OwnerKind() OwnerKind
	GetOwnerKey() string
	GetSchema() string
	GetValue() string
	GetOwner() Attributable
	SetOwner(owner Attributable)
}

// DerAttr is an attribute whose value is computed from a schema expression
type DerAttr interface {
	GetKey() uint64
	OwnerKind() OwnerKind
	GetOwnerKey() string
	GetSchema() string
	GetOwner() DerivedAttributable
	SetOwner(owner DerivedAttributable)
}

// PlainAttrBase holds the columns shared by all plain attribute tables
type PlainAttrBase struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID   string `gorm:"column:owner_id;index;not null"`
	SchemaKey string `gorm:"column:schema_key"`
	Value     string `gorm:"column:value"`

	owner Attributable
}

func (a *PlainAttrBase) GetKey() uint64 { return a.ID }
func (a *PlainAttrBase) GetOwnerKey() string { return a.OwnerID }
func (a *PlainAttrBase) GetSchema() string { return a.SchemaKey }
func (a *PlainAttrBase) GetValue() string { return a.Value }
func (a *PlainAttrBase) GetOwner() Attributable { return a.owner }

// SetOwner sets the in-memory owner; a non-nil owner also sets OwnerID
func (a *PlainAttrBase) SetOwner(owner Attributable) {
	a.owner = owner
	if owner != nil {
		a.OwnerID = owner.GetKey()
	}
}

// DerAttrBase holds the columns shared by all derived attribute tables
type DerAttrBase struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID   string `gorm:"column:owner_id;index;not null"`
	SchemaKey string `gorm:"column:schema_key"`

	owner DerivedAttributable
}

func (a *DerAttrBase) GetKey() uint64 { return a.ID }
func (a *DerAttrBase) GetOwnerKey() string { return a.OwnerID }
func (a *DerAttrBase) GetSchema() string { return a.SchemaKey }
func (a *DerAttrBase) GetOwner() DerivedAttributable { return a.owner }

// SetOwner sets the in-memory owner; a non-nil owner also sets OwnerID
func (a *DerAttrBase) SetOwner(owner DerivedAttributable) {
	a.owner = owner
	if owner != nil {
		a.OwnerID = owner.GetKey()
	}
}

type UPlainAttr struct{ PlainAttrBase }

func (UPlainAttr) TableName() string { return "u_plain_attrs" }
func (*UPlainAttr) OwnerKind() OwnerKind { return OwnerUser }

type GPlainAttr struct{ PlainAttrBase }

func (GPlainAttr) TableName() string { return "g_plain_attrs" }
func (*GPlainAttr) OwnerKind() OwnerKind { return OwnerGroup }

type APlainAttr struct{ PlainAttrBase }

func (APlainAttr) TableName() string { return "a_plain_attrs" }
func (*APlainAttr) OwnerKind() OwnerKind { return OwnerAnyObject }

type MPlainAttr struct{ PlainAttrBase }

func (MPlainAttr) TableName() string { return "m_plain_attrs" }
func (*MPlainAttr) OwnerKind() OwnerKind { return OwnerMembership }

type CPlainAttr struct{ PlainAttrBase }

func (CPlainAttr) TableName() string { return "c_plain_attrs" }
func (*CPlainAttr) OwnerKind() OwnerKind { return OwnerConfiguration }

type UDerAttr struct{ DerAttrBase }

func (UDerAttr) TableName() string { return "u_der_attrs" }
func (*UDerAttr) OwnerKind() OwnerKind { return OwnerUser }

type GDerAttr struct{ DerAttrBase }

func (GDerAttr) TableName() string { return "g_der_attrs" }
func (*GDerAttr) OwnerKind() OwnerKind { return OwnerGroup }

type ADerAttr struct{ DerAttrBase }

func (ADerAttr) TableName() string { return "a_der_attrs" }
func (*ADerAttr) OwnerKind() OwnerKind { return OwnerAnyObject }

type MDerAttr struct{ DerAttrBase }

func (MDerAttr) TableName() string { return "m_der_attrs" }
func (*MDerAttr) OwnerKind() OwnerKind { return OwnerMembership }
