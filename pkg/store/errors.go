package store

import (
	"errors"

	"github.com/doodlesbykumbi/idrepo/pkg/kind"
	"github.com/doodlesbykumbi/idrepo/pkg/model"
)

// ErrNotFound is returned when a lookup by key yields nothing
var ErrNotFound = errors.New("not found")

// ErrUnsupportedKind is returned for kinds outside a resolver's closed set
var ErrUnsupportedKind = kind.ErrUnsupported

// ErrOwnerKindMismatch is returned when an attribute is saved against an
// owner of another kind
var ErrOwnerKindMismatch = model.ErrOwnerKindMismatch

// ErrBuiltinAnyType is returned when deleting the USER or GROUP any type
var ErrBuiltinAnyType = errors.New("built-in any type cannot be deleted")

// ErrRootRealm is returned when deleting the realm at the top of the tree
var ErrRootRealm = errors.New("root realm cannot be deleted")

// ErrUnknownCollection is returned when a collection name has no repository
var ErrUnknownCollection = errors.New("unknown collection")
