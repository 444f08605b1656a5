// Package trait provides trait vectors and the affinity metrics derived
// from them. Compatibility measures how closely a node's traits align with
// the central preference vector; similarity measures how closely two
// arbitrary nodes' traits align. Both share the same formula but carry
// different semantics: compatibility always anchors on the preference
// vector and callers must not substitute one for the other.
package trait

// MaxValue is the upper bound of a single trait value. Trait values live
// in the range [0, MaxValue].
const MaxValue = 100.0

// Vector is a fixed-length ordered sequence of trait values.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Clamp bounds every value into [0, MaxValue] in place and returns v.
func (v Vector) Clamp() Vector {
	for i, val := range v {
		if val < 0 {
			v[i] = 0
		} else if val > MaxValue {
			v[i] = MaxValue
		}
	}
	return v
}

// Equal reports whether two vectors have identical length and values.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i, val := range v {
		if val != o[i] {
			return false
		}
	}
	return true
}

// alignment is the shared normalized inverse-distance formula behind
// Compatibility and Similarity. Vectors of different lengths are compared
// over the shorter common prefix; empty input scores 0 rather than
// failing since the result is a display value, not safety-critical.
func alignment(a, b Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		sum += diff
	}

	score := 1.0 - sum/(float64(n)*MaxValue)
	if score < 0 {
		return 0
	}
	return score
}

// Compatibility returns how closely a node's attributes align with the
// central preference vector, in [0, 1]. 1 means a perfect match.
func Compatibility(prefs, attrs Vector) float64 {
	return alignment(prefs, attrs)
}

// Similarity returns how closely two nodes' attribute vectors align, in
// [0, 1]. It drives the repulsion falloff between non-central nodes.
func Similarity(a, b Vector) float64 {
	return alignment(a, b)
}
