package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/roach88/oidkit/internal/oid"
)

// marshalArcs converts arcs to a JSON array for the arcs column.
func marshalArcs(arcs []uint32) (string, error) {
	data, err := json.Marshal(arcs)
	if err != nil {
		return "", fmt.Errorf("marshal arcs: %w", err)
	}
	return string(data), nil
}

// unmarshalArcs parses the arcs column and rebuilds the identifier.
// Rows written by Import always hold valid identifiers; anything else means
// the file was edited outside the catalog.
func unmarshalArcs(data string) (oid.ObjectIdentifier, error) {
	var arcs []uint32
	if err := json.Unmarshal([]byte(data), &arcs); err != nil {
		return oid.ObjectIdentifier{}, fmt.Errorf("unmarshal arcs: %w", err)
	}
	id, err := oid.New(arcs...)
	if err != nil {
		return oid.ObjectIdentifier{}, fmt.Errorf("unmarshal arcs: %w", err)
	}
	return id, nil
}

// sortKey encodes arcs as big-endian uint32 values. Byte-wise comparison of
// two keys orders them the same way as oid.ObjectIdentifier.Compare.
func sortKey(arcs []uint32) []byte {
	key := make([]byte, 0, 4*len(arcs))
	for _, a := range arcs {
		key = binary.BigEndian.AppendUint32(key, a)
	}
	return key
}
