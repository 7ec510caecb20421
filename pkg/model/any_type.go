package model

type AnyTypeKind string

const (
	AnyTypeKindUser      AnyTypeKind = "USER"
	AnyTypeKindGroup     AnyTypeKind = "GROUP"
	AnyTypeKindAnyObject AnyTypeKind = "ANY_OBJECT"
)

// AnyType is the type of a user, a group or a family of any-objects
type AnyType struct {
	ID   string      `gorm:"column:id;primaryKey"`
	Kind AnyTypeKind `gorm:"column:kind;not null"`
}

func (AnyType) TableName() string {
	return "any_types"
}

// IsBuiltin reports whether this is the USER or GROUP type, which always exist
func (t *AnyType) IsBuiltin() bool {
	return t.ID == string(AnyTypeKindUser) || t.ID == string(AnyTypeKindGroup)
}
