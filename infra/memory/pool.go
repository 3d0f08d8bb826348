// Package memory provides object recycling for the engine hot path.
package memory

// Pool is a typed free list. Terminal orders go back on the list instead
// of through the garbage collector, so a steady-state book allocates
// nothing per operation. Get falls back to the constructor when the list
// is empty.
type Pool[T any] struct {
	free []*T
	ctor func() *T
}

func NewPool[T any](prealloc int, ctor func() *T) *Pool[T] {
	p := &Pool[T]{
		free: make([]*T, 0, prealloc),
		ctor: ctor,
	}
	for i := 0; i < prealloc; i++ {
		p.free = append(p.free, ctor())
	}
	return p
}

func (p *Pool[T]) Get() *T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free = p.free[:n-1]
		return v
	}
	return p.ctor()
}

func (p *Pool[T]) Put(v *T) {
	p.free = append(p.free, v)
}

// Free returns the number of pooled objects, for tests and stats.
func (p *Pool[T]) Free() int {
	return len(p.free)
}
