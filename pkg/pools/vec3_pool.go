package pools

import (
	"sync"

	"github.com/stellarweave/galaxysim/pkg/space"
)

// Size classes for pooled Vec3 slices, chosen around typical node counts.
const (
	SmallNodes  = 64
	MediumNodes = 256
	LargeNodes  = 1024
)

// Vec3Pool pools slices of space.Vec3 for solver scratch buffers.
type Vec3Pool struct {
	small  sync.Pool // <= 64 elements
	medium sync.Pool // <= 256 elements
	large  sync.Pool // <= 1024 elements
}

// NewVec3Pool creates a new Vec3 slice pool.
func NewVec3Pool() *Vec3Pool {
	return &Vec3Pool{
		small: sync.Pool{
			New: func() any {
				s := make([]space.Vec3, 0, SmallNodes)
				return &s
			},
		},
		medium: sync.Pool{
			New: func() any {
				s := make([]space.Vec3, 0, MediumNodes)
				return &s
			},
		},
		large: sync.Pool{
			New: func() any {
				s := make([]space.Vec3, 0, LargeNodes)
				return &s
			},
		},
	}
}

// Get returns a zeroed Vec3 slice of exactly the requested length.
func (p *Vec3Pool) Get(size int) []space.Vec3 {
	var pool *sync.Pool
	switch {
	case size <= SmallNodes:
		pool = &p.small
	case size <= MediumNodes:
		pool = &p.medium
	case size <= LargeNodes:
		pool = &p.large
	default:
		return make([]space.Vec3, size)
	}

	sp, ok := pool.Get().(*[]space.Vec3)
	if !ok || cap(*sp) < size {
		return make([]space.Vec3, size)
	}

	s := (*sp)[:size]
	for i := range s {
		s[i] = space.Vec3{}
	}
	return s
}

// Put returns a Vec3 slice to the pool. Oversized slices are dropped.
func (p *Vec3Pool) Put(s []space.Vec3) {
	c := cap(s)
	if c == 0 || c > LargeNodes {
		return
	}

	s = s[:0]
	switch {
	case c <= SmallNodes:
		p.small.Put(&s)
	case c <= MediumNodes:
		p.medium.Put(&s)
	default:
		p.large.Put(&s)
	}
}

// defaultVec3Pool is the shared pool used when callers don't carry one.
var defaultVec3Pool = NewVec3Pool()

// GetVec3 returns a zeroed Vec3 slice from the shared pool.
func GetVec3(size int) []space.Vec3 {
	return defaultVec3Pool.Get(size)
}

// PutVec3 returns a Vec3 slice to the shared pool.
func PutVec3(s []space.Vec3) {
	defaultVec3Pool.Put(s)
}
