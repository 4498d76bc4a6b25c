package oid

import (
	"iter"
	"slices"
)

// Structural limits checked at construction.
const (
	MinArcs          = 3
	MaxRootArc       = 2
	MaxFirstLevelArc = 39
)

// ObjectIdentifier is an immutable OID value.
//
// The zero value has no arcs and is not valid. Copying an ObjectIdentifier
// is cheap and shares the underlying arcs, which are never written after
// construction, so values may be read from any number of goroutines.
type ObjectIdentifier struct {
	nodes []uint32
	err   *InvalidError
}

// New returns a validated identifier that owns a copy of nodes.
// Returns an *InvalidError if nodes breaks the structural rules.
func New(nodes ...uint32) (ObjectIdentifier, error) {
	if err := check(nodes); err != nil {
		return ObjectIdentifier{}, err
	}
	return ObjectIdentifier{nodes: slices.Clone(nodes)}, nil
}

// MustNew is like New but panics on error.
// Use only for static initialization where the arcs are known to be valid.
func MustNew(nodes ...uint32) ObjectIdentifier {
	o, err := New(nodes...)
	if err != nil {
		panic(err)
	}
	return o
}

// Static returns an identifier that borrows nodes without copying.
//
// Static never fails and never panics: validity is recorded and the failure
// surfaces on the first read of an invalid value. It is meant for
// package-level tables built from literals. The caller must not modify the
// backing array for as long as the identifier is in use.
func Static(nodes []uint32) ObjectIdentifier {
	return ObjectIdentifier{nodes: nodes, err: check(nodes)}
}

// Validate reports whether nodes would make a valid identifier.
// Returns nil or an *InvalidError.
func Validate(nodes []uint32) error {
	if err := check(nodes); err != nil {
		return err
	}
	return nil
}

// check only looks at the length and the first two arcs.
func check(nodes []uint32) *InvalidError {
	var reason Reason
	switch {
	case len(nodes) < MinArcs:
		reason = ReasonTooShort
	case nodes[0] > MaxRootArc:
		reason = ReasonRootArc
	case nodes[1] > MaxFirstLevelArc:
		reason = ReasonFirstLevelArc
	default:
		return nil
	}
	return &InvalidError{Nodes: slices.Clone(nodes), Reason: reason}
}

// Valid reports whether the identifier passed validation.
// The zero value is not valid.
func (o ObjectIdentifier) Valid() bool {
	return o.err == nil && o.nodes != nil
}

// Err returns the validation error recorded at construction, or nil.
func (o ObjectIdentifier) Err() error {
	if o.err != nil {
		return o.err
	}
	if o.nodes == nil {
		return &InvalidError{Reason: ReasonTooShort}
	}
	return nil
}

// IsZero reports whether o is the zero value.
func (o ObjectIdentifier) IsZero() bool {
	return o.nodes == nil && o.err == nil
}

// Nodes returns the arcs of a valid identifier without copying them.
// The returned slice must be treated as read-only. Its capacity is clipped
// to its length, so appending to it always allocates.
//
// Panics with an *InvalidError if the identifier is not valid. This is the
// single gate every other accessor goes through.
func (o ObjectIdentifier) Nodes() []uint32 {
	if err := o.Err(); err != nil {
		panic(err)
	}
	return slices.Clip(o.nodes)
}

// Len returns the number of arcs.
func (o ObjectIdentifier) Len() int {
	return len(o.Nodes())
}

// Arc returns the arc at index i.
func (o ObjectIdentifier) Arc(i int) uint32 {
	return o.Nodes()[i]
}

// All iterates over (index, arc) pairs.
func (o ObjectIdentifier) All() iter.Seq2[int, uint32] {
	nodes := o.Nodes()
	return func(yield func(int, uint32) bool) {
		for i, n := range nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Equal reports whether both identifiers have the same arcs.
func (o ObjectIdentifier) Equal(other ObjectIdentifier) bool {
	return slices.Equal(o.Nodes(), other.Nodes())
}

// Compare orders identifiers arc by arc; a prefix sorts first.
// Returns -1, 0 or +1.
func (o ObjectIdentifier) Compare(other ObjectIdentifier) int {
	return slices.Compare(o.Nodes(), other.Nodes())
}

// HasPrefix reports whether o lies at or below prefix in the OID tree.
func (o ObjectIdentifier) HasPrefix(prefix ObjectIdentifier) bool {
	nodes, p := o.Nodes(), prefix.Nodes()
	return len(p) <= len(nodes) && slices.Equal(nodes[:len(p)], p)
}
