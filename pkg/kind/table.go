package kind

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a kind outside a table's closed set is resolved
var ErrUnsupported = errors.New("unsupported kind")

// Binding associates one kind with the value it resolves to
type Binding[K comparable, V any] struct {
	Kind  K
	Value V
}

// Bind creates a Binding
func Bind[K comparable, V any](k K, v V) Binding[K, V] {
	return Binding[K, V]{Kind: k, Value: v}
}

// Table is an immutable, ordered mapping from a closed set of kinds to values.
// Bindings keep the order they were declared in; that order is the priority
// order reported by Kinds.
type Table[K comparable, V any] struct {
	family  string
	order   []K
	entries map[K]V
}

// New builds a Table for the named family. Declaring the same kind twice is a
// programming error and panics.
func New[K comparable, V any](family string, bindings ...Binding[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		family:  family,
		order:   make([]K, 0, len(bindings)),
		entries: make(map[K]V, len(bindings)),
	}
	for _, b := range bindings {
		if _, dup := t.entries[b.Kind]; dup {
			panic(fmt.Sprintf("kind: %s table binds %v twice", family, b.Kind))
		}
		t.order = append(t.order, b.Kind)
		t.entries[b.Kind] = b.Value
	}
	return t
}

// Family returns the name the table was built with
func (t *Table[K, V]) Family() string {
	return t.family
}

// Resolve returns the value bound to k, or an error wrapping ErrUnsupported
func (t *Table[K, V]) Resolve(k K) (V, error) {
	v, ok := t.entries[k]
	if !ok {
		var zero V
		return zero, &UnsupportedError{Family: t.family, Kind: fmt.Sprint(k)}
	}
	return v, nil
}

// MustResolve is Resolve for kinds known to be supported at compile time
func (t *Table[K, V]) MustResolve(k K) V {
	v, err := t.Resolve(k)
	if err != nil {
		panic(err)
	}
	return v
}

// Supports reports whether k belongs to the table's closed set
func (t *Table[K, V]) Supports(k K) bool {
	_, ok := t.entries[k]
	return ok
}

// Kinds returns the supported kinds in declaration order
func (t *Table[K, V]) Kinds() []K {
	out := make([]K, len(t.order))
	copy(out, t.order)
	return out
}

// UnsupportedError carries the family and the offending kind
type UnsupportedError struct {
	Family string
	Kind   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s has no %s binding", ErrUnsupported, e.Kind, e.Family)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}
