package pools

import (
	"testing"

	"github.com/stellarweave/galaxysim/pkg/space"
)

func TestVec3Pool_Get(t *testing.T) {
	pool := NewVec3Pool()

	tests := []struct {
		name string
		size int
	}{
		{"small", 10},
		{"small_exact", SmallNodes},
		{"medium", 100},
		{"medium_exact", MediumNodes},
		{"large", 500},
		{"large_exact", LargeNodes},
		{"oversized", LargeNodes + 100}, // Allocated directly
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := pool.Get(tt.size)
			if len(s) != tt.size {
				t.Errorf("Get(%d) length = %d, want %d", tt.size, len(s), tt.size)
			}
			for i, v := range s {
				if v != (space.Vec3{}) {
					t.Fatalf("Get(%d)[%d] = %v, want zero", tt.size, i, v)
				}
			}
		})
	}
}

func TestVec3Pool_PutAndReuse(t *testing.T) {
	pool := NewVec3Pool()

	// Dirty a buffer, return it, and verify the next Get is zeroed
	s := pool.Get(16)
	for i := range s {
		s[i] = space.Vec3{X: 1, Y: 2, Z: 3}
	}
	pool.Put(s)

	s = pool.Get(16)
	for i, v := range s {
		if v != (space.Vec3{}) {
			t.Errorf("after Put, Get[%d] = %v, want zero", i, v)
		}
	}
}

func TestVec3Pool_OversizedNotPooled(t *testing.T) {
	pool := NewVec3Pool()

	// Oversized buffers are dropped, not pooled; must not panic
	large := make([]space.Vec3, LargeNodes+1000)
	pool.Put(large)
}

func TestSharedPool(t *testing.T) {
	s := GetVec3(32)
	if len(s) != 32 {
		t.Errorf("GetVec3(32) length = %d, want 32", len(s))
	}
	PutVec3(s)
}
