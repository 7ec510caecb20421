package model

import (
	"errors"
	"fmt"
	"slices"
)

// ErrOwnerKindMismatch is returned when an attribute is attached to an owner
// of a different kind than the attribute's concrete record type
var ErrOwnerKindMismatch = errors.New("attribute kind does not match owner kind")

// Attributable is an entity owning plain attributes
type Attributable interface {
	OwnerKind() OwnerKind
	GetKey() string

	PlainAttrs() []PlainAttr
	AddPlainAttr(attr PlainAttr) error
	RemovePlainAttr(attr PlainAttr) bool
}

// DerivedAttributable is an entity owning plain and derived attributes.
// Configuration owns plain attributes only.
type DerivedAttributable interface {
	Attributable

	DerAttrs() []DerAttr
	AddDerAttr(attr DerAttr) error
	RemoveDerAttr(attr DerAttr) bool
}

func mismatch(owner Attributable, attrKind OwnerKind, family string) error {
	return fmt.Errorf("%w: %s %s attribute on %s %q", ErrOwnerKindMismatch, attrKind, family, owner.OwnerKind(), owner.GetKey())
}

func plainAttrs[T PlainAttr](attrs []T) []PlainAttr {
	out := make([]PlainAttr, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

func derAttrs[T DerAttr](attrs []T) []DerAttr {
	out := make([]DerAttr, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

func addPlain[T PlainAttr](owner Attributable, attrs *[]T, attr PlainAttr) error {
	typed, ok := attr.(T)
	if !ok || attr.OwnerKind() != owner.OwnerKind() {
		return mismatch(owner, attr.OwnerKind(), "plain")
	}
	typed.SetOwner(owner)
	*attrs = append(*attrs, typed)
	return nil
}

func addDer[T DerAttr](owner DerivedAttributable, attrs *[]T, attr DerAttr) error {
	typed, ok := attr.(T)
	if !ok || attr.OwnerKind() != owner.OwnerKind() {
		return mismatch(owner, attr.OwnerKind(), "derived")
	}
	typed.SetOwner(owner)
	*attrs = append(*attrs, typed)
	return nil
}

func removePlain[T PlainAttr](attrs *[]T, attr PlainAttr) bool {
	typed, ok := attr.(T)
	if !ok {
		return false
	}
	return removeAttr(attrs, typed)
}

func removeDer[T DerAttr](attrs *[]T, attr DerAttr) bool {
	typed, ok := attr.(T)
	if !ok {
		return false
	}
	return removeAttr(attrs, typed)
}

// removeAttr drops attr from attrs, matching on identity or, for persisted
// records, on key.
func removeAttr[A interface{ GetKey() uint64 }](attrs *[]A, attr A) bool {
	before := len(*attrs)
	*attrs = slices.DeleteFunc(*attrs, func(a A) bool {
		return any(a) == any(attr) || (attr.GetKey() != 0 && a.GetKey() == attr.GetKey())
	})
	return len(*attrs) != before
}

func linkPlain[T PlainAttr](owner Attributable, attrs []T) {
	for _, a := range attrs {
		a.SetOwner(owner)
	}
}

func linkDer[T DerAttr](owner DerivedAttributable, attrs []T) {
	for _, a := range attrs {
		a.SetOwner(owner)
	}
}
