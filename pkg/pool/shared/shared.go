// Package shared implements pooled shared-ownership containers: Shared[T],
// a strong+weak reference-counted container, and ThinShared[T], its
// strong-only counterpart. Both recycle their backing allocation through a
// pool/global.Pool once every owning handle has released it.
package shared

import (
	"sync/atomic"

	"github.com/ajitpratap0/poolshark/pkg/pool/global"
)

// Shared is a pooled, strong+weak reference-counted container for a single
// value of T. Clone increments the strong count; Release decrements it and,
// once it reaches zero, resets the value and returns the allocation to its
// pool (or really drops it, if orphaned or the pool is gone). Downgrade
// produces a Weak handle that can attempt to resurrect the value with
// Upgrade as long as at least one strong handle still exists.
//
// strong and weak are packed into one atomic word instead of two
// independent counters: a strong-count-hits-zero decrement and a
// weak-count-hits-zero decrement racing each other must agree on exactly
// one winner for returnToPool, and that requires deciding off a single
// atomic snapshot of both counts together. Two separate atomics, each
// checked against the other's Load after its own decrement commits, lets
// both sides observe "the other is already zero" and both call
// returnToPool — a double-free. Packing avoids it the way the original's
// Arc::get_mut does: one fenced check of strong and weak together.
type Shared[T any] struct {
	state atomic.Uint64 // low 32 bits: strong count. high 32 bits: weak count.
	pool  global.WeakPool[*Shared[T]]
	value T
	reset func(*T)
}

func packState(strong, weak uint32) uint64 {
	return uint64(weak)<<32 | uint64(strong)
}

func unpackState(state uint64) (strong, weak uint32) {
	return uint32(state), uint32(state >> 32)
}

// New constructs a standalone Shared[T], not bound to any pool. Releasing
// its last strong handle really drops it. reset may be nil, in which case
// Release clears the value back to T's zero value.
func New[T any](value T, reset func(*T)) *Shared[T] {
	s := &Shared[T]{value: value, reset: reset}
	s.state.Store(packState(1, 0))
	return s
}

// NewIn constructs a Shared[T] bound to p: once its last strong handle is
// released, the allocation is offered back to p instead of being dropped.
func NewIn[T any](p global.Pool[*Shared[T]], value T, reset func(*T)) *Shared[T] {
	s := &Shared[T]{value: value, reset: reset, pool: p.Downgrade()}
	s.state.Store(packState(1, 0))
	return s
}

// Value returns the wrapped value.
func (s *Shared[T]) Value() T {
	return s.value
}

// Clone returns the same allocation with its strong count incremented,
// mirroring Arc::clone.
func (s *Shared[T]) Clone() *Shared[T] {
	for {
		old := s.state.Load()
		strong, weak := unpackState(old)
		if s.state.CompareAndSwap(old, packState(strong+1, weak)) {
			return s
		}
	}
}

// Release gives up one strong handle. On the last one, the value is reset
// and, if no weak handles remain either, the allocation is offered back to
// its pool.
func (s *Shared[T]) Release() {
	for {
		old := s.state.Load()
		strong, weak := unpackState(old)
		newStrong := strong - 1
		if !s.state.CompareAndSwap(old, packState(newStrong, weak)) {
			continue
		}
		if newStrong != 0 {
			return
		}
		s.resetValue()
		if weak == 0 {
			s.returnToPool()
		}
		return
	}
}

// Downgrade produces a non-owning Weak handle to this allocation.
func (s *Shared[T]) Downgrade() Weak[T] {
	for {
		old := s.state.Load()
		strong, weak := unpackState(old)
		if s.state.CompareAndSwap(old, packState(strong, weak+1)) {
			return Weak[T]{shared: s}
		}
	}
}

// Unique reports whether this is the only strong handle to the allocation,
// the precondition MakeMut checks before mutating in place.
func (s *Shared[T]) Unique() bool {
	strong, _ := unpackState(s.state.Load())
	return strong == 1
}

// MakeMut implements clone-on-write: if s is uniquely held, it is returned
// as-is for in-place mutation; otherwise a fresh, unbound Shared[T] holding
// a copy of the value (produced by copy) is returned, leaving s's other
// holders unaffected.
func (s *Shared[T]) MakeMut(copy func(T) T) *Shared[T] {
	if s.Unique() {
		return s
	}
	return New(copy(s.value), s.reset)
}

func (s *Shared[T]) resetValue() {
	if s.reset != nil {
		s.reset(&s.value)
		return
	}
	var zero T
	s.value = zero
}

func (s *Shared[T]) returnToPool() {
	if s.pool == (global.WeakPool[*Shared[T]]{}) {
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

// Reset satisfies pool/global's RawPoolable contract so a Shared[T]
// allocation can itself be pooled via a pool/global.Pool[*Shared[T]]. The
// value is already cleared by the time Release offers the allocation back;
// this re-arms the strong/weak counts for the allocation's next checkout.
func (s *Shared[T]) Reset() {
	s.state.Store(packState(1, 0))
}

// Capacity satisfies RawPoolable: a Shared[T] allocation always holds
// exactly one logical value.
func (s *Shared[T]) Capacity() int { return 1 }

// ReallyDrop satisfies RawPoolable. The value was already cleared by
// resetValue before the allocation reached this point; there is nothing
// beyond that for a Shared[T] allocation to release.
func (s *Shared[T]) ReallyDrop() {}

// Weak is a non-owning handle to a Shared[T] allocation.
type Weak[T any] struct {
	shared *Shared[T]
}

// Upgrade attempts to promote this Weak handle back to a strong one,
// failing once every strong handle has already been released.
func (w Weak[T]) Upgrade() (*Shared[T], bool) {
	for {
		old := w.shared.state.Load()
		strong, weak := unpackState(old)
		if strong == 0 {
			return nil, false
		}
		if w.shared.state.CompareAndSwap(old, packState(strong+1, weak)) {
			return w.shared, true
		}
	}
}

// Release gives up this weak handle. If it is the last reference of any
// kind (no strong handles either), the allocation is offered back to its
// pool.
func (w Weak[T]) Release() {
	for {
		old := w.shared.state.Load()
		strong, weak := unpackState(old)
		newWeak := weak - 1
		if !w.shared.state.CompareAndSwap(old, packState(strong, newWeak)) {
			continue
		}
		if newWeak == 0 && strong == 0 {
			w.shared.returnToPool()
		}
		return
	}
}
