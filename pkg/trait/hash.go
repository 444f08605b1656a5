package trait

// Hash returns a deterministic, order-sensitive hash of the vector.
// Identical vectors always hash identically across runs, so nodes with
// the same traits cluster to the same place. The polynomial form makes
// the hash sensitive to element order, not just the value multiset.
func Hash(v Vector) uint32 {
	var h uint32
	for _, val := range v {
		h = h*31 + uint32(int64(val))
	}
	return h
}

// HashReversed hashes the vector in reverse element order. Used to derive
// an independent second coordinate (vertical offset) from the same traits.
func HashReversed(v Vector) uint32 {
	var h uint32
	for i := len(v) - 1; i >= 0; i-- {
		h = h*31 + uint32(int64(v[i]))
	}
	return h
}
