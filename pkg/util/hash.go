package util

import (
	"hash/fnv"
)

// HashFields returns an FNV-1a fingerprint of the given fields. Fields are
// NUL separated so ("ab", "c") and ("a", "bc") never collide by construction.
func HashFields(fields ...string) uint64 {
	h := fnv.New64a()
	for i, f := range fields {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(f))
	}
	return h.Sum64()
}
