package local

import (
	"runtime"
	"unsafe"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

// iso constrains PT to "pointer to T, implementing IsoPoolable and
// RawPoolable", the standard Go generics pattern for working with
// pointer-receiver methods generically. Every poolable type in this module
// defines Reset, Capacity, Discriminant, and ReallyDrop on a pointer
// receiver (e.g. *ByteBuffer), so LPooled is parameterized over both the
// value type T and its pointer type PT instead of over T alone.
type iso[T any] interface {
	*T
	pool.IsoPoolable
	pool.RawPoolable
}

// LPooled is a value checked out of the local registry. It owns the
// underlying PT until Release or Detach is called; a finalizer registered
// at Take time acts as a GC-driven safety net for callers who forget to
// call Release explicitly (see DESIGN.md).
type LPooled[T any, PT iso[T]] struct {
	value        PT
	discriminant pool.Discriminant
}

// Take checks out a value for discriminant PT.Discriminant(), recycling
// one from the local registry's slot when available and otherwise
// constructing a fresh one with empty. T and PT are almost always left to
// be inferred from empty's return type:
//
//	lp := local.Take(func() *MyType { return &MyType{} })
//
// The returned *LPooled must eventually be released with Release (or
// Detach, to take ownership outright); until then its finalizer
// guarantees the value is not leaked.
func Take[T any, PT iso[T]](empty func() PT) *LPooled[T, PT] {
	var zero T
	d := PT(&zero).Discriminant()

	var v PT
	if ptr, ok := takeRaw(d); ok {
		v = PT(ptr)
	} else {
		v = empty()
	}

	lp := &LPooled[T, PT]{value: v, discriminant: d}
	runtime.SetFinalizer(lp, finalizeLPooled[T, PT])
	return lp
}

// Value returns the wrapped value. It panics if called after Release or
// Detach: using a value after giving up ownership of it is a programmer
// error, not a recoverable condition.
func (lp *LPooled[T, PT]) Value() PT {
	if lp.value == nil {
		panic("local: Value called on a released LPooled")
	}
	return lp.value
}

// Release resets the value and offers it back to the local registry,
// subject to the common admission policy. It is idempotent: calling it
// more than once, or after Detach, is a no-op.
func (lp *LPooled[T, PT]) Release() {
	if lp.value == nil {
		return
	}
	runtime.SetFinalizer(lp, nil)
	lp.release()
}

// Detach clears the finalizer and hands ownership of the underlying value
// to the caller without returning it to the registry. Useful when the
// value needs to outlive the pool entirely, e.g. being stored elsewhere.
func (lp *LPooled[T, PT]) Detach() PT {
	v := lp.value
	runtime.SetFinalizer(lp, nil)
	lp.value = nil
	return v
}

func (lp *LPooled[T, PT]) release() {
	v := lp.value
	lp.value = nil

	v.Reset()
	if !pool.ReallyDropped(v) {
		v.ReallyDrop()
		return
	}
	insertRaw(unsafe.Pointer(v), lp.discriminant, v.Capacity())
}

func finalizeLPooled[T any, PT iso[T]](lp *LPooled[T, PT]) {
	lp.release()
}
