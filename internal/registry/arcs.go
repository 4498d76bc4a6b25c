package registry

import (
	"fmt"
	"math"
)

// arcsFromInt64 narrows decoded integers to uint32 arcs.
// Arcs outside 0..MaxUint32 are rejected, never wrapped.
func arcsFromInt64(values []int64) ([]uint32, error) {
	arcs := make([]uint32, len(values))
	for i, v := range values {
		if v < 0 || v > math.MaxUint32 {
			return nil, fmt.Errorf("arc %d: value %d out of range 0..%d", i, v, uint32(math.MaxUint32))
		}
		arcs[i] = uint32(v)
	}
	return arcs, nil
}
