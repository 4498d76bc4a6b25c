package registry

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/roach88/oidkit/internal/oid"
)

// namePattern restricts entry names to identifier-like tokens.
var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]*$`)

// Entry is a named object identifier.
type Entry struct {
	Name        string               `json:"name"`
	OID         oid.ObjectIdentifier `json:"oid"`
	Description string               `json:"description,omitempty"`

	// Source records where the entry was defined. It is not part of the
	// canonical form.
	Source Position `json:"-"`
}

// Registry is an immutable, name-sorted set of entries.
type Registry struct {
	entries []Entry
	byName  map[string]int
}

// New builds a registry from entries. Entries are sorted by name.
// Returns a *LoadError for a malformed name, an invalid identifier or a
// duplicate name.
func New(entries []Entry) (*Registry, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})

	r := &Registry{
		entries: sorted,
		byName:  make(map[string]int, len(sorted)),
	}
	for i, e := range sorted {
		if err := ValidateName(e.Name); err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidName, Message: err.Error(), Pos: e.Source}
		}
		if err := e.OID.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidOID, Message: fmt.Sprintf("%s: %v", e.Name, err), Pos: e.Source, Err: err}
		}
		if prev, dup := r.byName[e.Name]; dup {
			return nil, duplicateError(e, sorted[prev])
		}
		r.byName[e.Name] = i
	}
	return r, nil
}

// ValidateName checks an entry name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must start with a letter and contain only letters, digits, '.', '_' or '-'", name)
	}
	return nil
}

func duplicateError(e, prev Entry) *LoadError {
	msg := fmt.Sprintf("duplicate name %q", e.Name)
	if prev.Source.IsValid() {
		msg += fmt.Sprintf(" (first defined at %s)", prev.Source)
	}
	return &LoadError{Code: ErrCodeDuplicateName, Message: msg, Pos: e.Source}
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries, sorted by name.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Lookup returns the entry with the given name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// ByOID returns entries sorted by identifier, ties broken by name.
func (r *Registry) ByOID() []Entry {
	out := slices.Clone(r.entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := a.OID.Compare(b.OID); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
