package model

//go:generate go run github.com/dmarkham/enumer -type OwnerKind -trimprefix Owner -transform kebab -json -yaml -output owner_kind.gen.go

// OwnerKind is the kind of entity owning an attribute. It is a property of the
// owner's type, never of an individual record.
type OwnerKind int

const (
	OwnerUser OwnerKind = iota + 1
	OwnerGroup
	OwnerAnyObject
	OwnerMembership
	OwnerConfiguration
)
