package oid

import (
	"errors"
	"fmt"
)

// Reason describes which structural rule an identifier violates.
type Reason string

const (
	// ReasonTooShort means the identifier has fewer than MinArcs arcs.
	ReasonTooShort Reason = "TOO_SHORT"

	// ReasonRootArc means the first arc is greater than MaxRootArc.
	ReasonRootArc Reason = "ROOT_ARC"

	// ReasonFirstLevelArc means the second arc is greater than MaxFirstLevelArc.
	ReasonFirstLevelArc Reason = "FIRST_LEVEL_ARC"
)

// InvalidError reports an identifier that breaks the structural rules.
//
// It is returned by New and Validate, and it is the panic value when an
// invalid Static identifier is read.
type InvalidError struct {
	// Nodes is a copy of the offending arc sequence.
	Nodes []uint32

	// Reason identifies the first rule that failed.
	Reason Reason
}

// Error implements the error interface.
func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid OID: %v (%s)", e.Nodes, e.detail())
}

func (e *InvalidError) detail() string {
	switch e.Reason {
	case ReasonTooShort:
		return fmt.Sprintf("need at least %d arcs, have %d", MinArcs, len(e.Nodes))
	case ReasonRootArc:
		return fmt.Sprintf("root arc %d exceeds %d", e.Nodes[0], MaxRootArc)
	case ReasonFirstLevelArc:
		return fmt.Sprintf("first-level arc %d exceeds %d", e.Nodes[1], MaxFirstLevelArc)
	default:
		return string(e.Reason)
	}
}

// IsInvalid returns true if err is (or wraps) an *InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}
