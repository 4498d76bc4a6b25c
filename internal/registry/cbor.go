package registry

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/roach88/oidkit/internal/oid"
)

// cborVersion is written into every encoded registry.
const cborVersion = 1

// encMode uses Core Deterministic Encoding (RFC 8949 4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("registry: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("registry: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborRegistry struct {
	Version int         `cbor:"1,keyasint"`
	OIDs    []cborEntry `cbor:"2,keyasint"`
}

type cborEntry struct {
	Name        string   `cbor:"1,keyasint"`
	Arcs        []uint32 `cbor:"2,keyasint"`
	Description string   `cbor:"3,keyasint,omitempty"`
}

// EncodeCBOR encodes the registry deterministically. Arcs are encoded as
// arrays of unsigned integers, not as DER.
func (r *Registry) EncodeCBOR() ([]byte, error) {
	doc := cborRegistry{Version: cborVersion, OIDs: make([]cborEntry, len(r.entries))}
	for i, e := range r.entries {
		doc.OIDs[i] = cborEntry{Name: e.Name, Arcs: e.OID.Nodes(), Description: e.Description}
	}
	return encMode.Marshal(doc)
}

// DecodeCBOR decodes a registry produced by EncodeCBOR. Every entry is
// validated again; source positions are empty.
func DecodeCBOR(data []byte) (*Registry, error) {
	var doc cborRegistry
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if doc.Version != cborVersion {
		return nil, fmt.Errorf("decode registry: unsupported version %d", doc.Version)
	}

	entries := make([]Entry, 0, len(doc.OIDs))
	for _, raw := range doc.OIDs {
		id, err := oid.New(raw.Arcs...)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidOID, Message: fmt.Sprintf("%s: %v", raw.Name, err), Err: err}
		}
		entries = append(entries, Entry{Name: raw.Name, OID: id, Description: raw.Description})
	}
	return New(entries)
}
