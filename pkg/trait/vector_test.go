package trait

import (
	"math"
	"testing"
)

func TestCompatibilityIdentity(t *testing.T) {
	v := Vector{50, 50, 50}
	if got := Compatibility(v, v); got != 1.0 {
		t.Errorf("Compatibility(v, v) = %f, want 1.0", got)
	}
	if got := Similarity(v, v); got != 1.0 {
		t.Errorf("Similarity(v, v) = %f, want 1.0", got)
	}
}

func TestCompatibilityScenarios(t *testing.T) {
	// Central preferences [100,0,0] vs node [0,100,0]:
	// sum diff = 200, L = 3, score = 1 - 200/300
	got := Compatibility(Vector{100, 0, 0}, Vector{0, 100, 0})
	want := 1.0 - 200.0/300.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Compatibility = %f, want %f", got, want)
	}

	// Maximally different vectors score 0
	got = Similarity(Vector{0, 0, 0}, Vector{100, 100, 100})
	if got != 0 {
		t.Errorf("Similarity of opposite vectors = %f, want 0", got)
	}
}

func TestCompatibilityLengthMismatch(t *testing.T) {
	// Mismatched lengths compare over the shorter common prefix
	prefs := Vector{50, 50}
	attrs := Vector{50, 50, 100, 100}
	if got := Compatibility(prefs, attrs); got != 1.0 {
		t.Errorf("Compatibility over common prefix = %f, want 1.0", got)
	}
}

func TestCompatibilityEmpty(t *testing.T) {
	if got := Compatibility(nil, Vector{1, 2, 3}); got != 0 {
		t.Errorf("Compatibility with empty prefs = %f, want 0", got)
	}
	if got := Compatibility(Vector{}, Vector{}); got != 0 {
		t.Errorf("Compatibility of empty vectors = %f, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	v := Vector{-5, 50, 150}.Clamp()
	if !v.Equal(Vector{0, 50, 100}) {
		t.Errorf("Clamp returned %v", v)
	}
}

func TestEqual(t *testing.T) {
	if !(Vector{1, 2}).Equal(Vector{1, 2}) {
		t.Error("identical vectors should be equal")
	}
	if (Vector{1, 2}).Equal(Vector{1, 2, 3}) {
		t.Error("different-length vectors should not be equal")
	}
	if (Vector{1, 2}).Equal(Vector{2, 1}) {
		t.Error("reordered vectors should not be equal")
	}
}

func TestHashDeterministic(t *testing.T) {
	v := Vector{10, 20, 30}
	if Hash(v) != Hash(v.Clone()) {
		t.Error("Hash should be identical for identical vectors")
	}
	if HashReversed(v) != HashReversed(v.Clone()) {
		t.Error("HashReversed should be identical for identical vectors")
	}
}

func TestHashOrderSensitive(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{3, 2, 1}
	if Hash(a) == Hash(b) {
		t.Error("Hash should be order-sensitive")
	}
	// Reversed hash of a equals forward hash of b by construction
	if HashReversed(a) != Hash(b) {
		t.Error("HashReversed(a) should equal Hash(reverse(a))")
	}
}
