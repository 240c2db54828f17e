package shared

import (
	"sync/atomic"

	"github.com/ajitpratap0/poolshark/pkg/pool/global"
)

// ThinShared is the strong-only counterpart to Shared[T]: a shared-ownership
// wrapper without a weak count and therefore no Downgrade. Once its last
// strong handle is released, the allocation either returns to its pool
// immediately or is really dropped if orphaned.
type ThinShared[T any] struct {
	strong atomic.Int64
	pool   global.WeakPool[*ThinShared[T]]
	value  T
	reset  func(*T)
}

// NewThin constructs a standalone ThinShared[T], not bound to any pool.
func NewThin[T any](value T, reset func(*T)) *ThinShared[T] {
	s := &ThinShared[T]{value: value, reset: reset}
	s.strong.Store(1)
	return s
}

// NewThinIn constructs a ThinShared[T] bound to p.
func NewThinIn[T any](p global.Pool[*ThinShared[T]], value T, reset func(*T)) *ThinShared[T] {
	s := &ThinShared[T]{value: value, reset: reset, pool: p.Downgrade()}
	s.strong.Store(1)
	return s
}

// Value returns the wrapped value.
func (s *ThinShared[T]) Value() T {
	return s.value
}

// Clone returns the same allocation with its strong count incremented.
func (s *ThinShared[T]) Clone() *ThinShared[T] {
	s.strong.Add(1)
	return s
}

// Release gives up one strong handle. On the last one, the value is reset
// and the allocation is offered back to its pool, if any.
func (s *ThinShared[T]) Release() {
	if s.strong.Add(-1) != 0 {
		return
	}
	if s.reset != nil {
		s.reset(&s.value)
	} else {
		var zero T
		s.value = zero
	}

	if s.pool == (global.WeakPool[*ThinShared[T]]{}) {
		s.ReallyDrop()
		return
	}
	p, ok := s.pool.Upgrade()
	if !ok {
		s.ReallyDrop()
		return
	}
	defer p.Release()
	p.Put(s)
}

// Unique reports whether this is the only strong handle to the allocation.
func (s *ThinShared[T]) Unique() bool {
	return s.strong.Load() == 1
}

// MakeMut implements clone-on-write the same way Shared[T].MakeMut does.
func (s *ThinShared[T]) MakeMut(copy func(T) T) *ThinShared[T] {
	if s.Unique() {
		return s
	}
	return NewThin(copy(s.value), s.reset)
}

// Reset satisfies pool/global's RawPoolable contract, re-arming the strong
// count for this allocation's next checkout.
func (s *ThinShared[T]) Reset() {
	s.strong.Store(1)
}

// Capacity satisfies RawPoolable: a ThinShared[T] allocation always holds
// exactly one logical value.
func (s *ThinShared[T]) Capacity() int { return 1 }

// ReallyDrop satisfies RawPoolable. Release already clears the value before
// an allocation is really dropped, so there is nothing further to do here.
func (s *ThinShared[T]) ReallyDrop() {}
