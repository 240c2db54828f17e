package global

import (
	"runtime"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

// GPooled wraps a value checked out of (or orphaned from) a cross-thread
// Pool[T]. A finalizer mirrors LPooled[T]'s GC-driven safety net; the
// explicit path is Release (return to the pool) or Detach (take ownership
// outright).
type GPooled[T pool.RawPoolable] struct {
	value    T
	pool     WeakPool[T]
	orphaned bool
	released bool
}

func newGPooled[T pool.RawPoolable](v T, wp WeakPool[T]) *GPooled[T] {
	g := &GPooled[T]{value: v, pool: wp}
	runtime.SetFinalizer(g, finalizeGPooled[T])
	return g
}

// Orphan constructs a GPooled not bound to any pool: releasing it always
// really drops it, until it is bound with Assign.
func Orphan[T pool.RawPoolable](v T) *GPooled[T] {
	g := &GPooled[T]{value: v, orphaned: true}
	runtime.SetFinalizer(g, finalizeGPooled[T])
	return g
}

// Assign binds a previously orphaned GPooled to p, so that a later Release
// offers the value back to p instead of really dropping it. Assigning an
// already-bound GPooled simply rebinds it to p.
func (g *GPooled[T]) Assign(p Pool[T]) {
	g.pool = p.Downgrade()
	g.orphaned = false
}

// Value returns the wrapped value. It panics if called after Release or
// Detach.
func (g *GPooled[T]) Value() T {
	if g.released {
		panic("global: Value called on a released GPooled")
	}
	return g.value
}

// Release offers the value back, if bound to a live pool, subject to the
// common admission policy (which resets it first). An orphaned GPooled, or
// one whose pool has lost its last strong handle, is really dropped
// instead, without a Reset.
// Release is idempotent.
func (g *GPooled[T]) Release() {
	if g.released {
		return
	}
	runtime.SetFinalizer(g, nil)
	g.release()
}

// Detach clears the finalizer and returns the wrapped value without
// offering it back to the pool.
func (g *GPooled[T]) Detach() T {
	runtime.SetFinalizer(g, nil)
	g.released = true
	return g.value
}

func (g *GPooled[T]) release() {
	g.released = true
	if g.orphaned {
		g.value.ReallyDrop()
		return
	}
	p, ok := g.pool.Upgrade()
	if !ok {
		g.value.ReallyDrop()
		return
	}
	defer p.Release()
	p.Put(g.value)
}

func finalizeGPooled[T pool.RawPoolable](g *GPooled[T]) {
	g.release()
}
