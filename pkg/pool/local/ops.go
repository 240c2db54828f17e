package local

import (
	"runtime"
	"unsafe"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

// Insert offers v back to the local registry directly, without going
// through an LPooled wrapper. Useful for values constructed outside of
// Take — e.g. a caller building a value once and inserting it into the
// pool up front to warm it.
func Insert[T any, PT iso[T]](v PT) {
	d := v.Discriminant()
	v.Reset()
	if !pool.ReallyDropped(v) {
		v.ReallyDrop()
		return
	}
	insertRaw(unsafe.Pointer(v), d, v.Capacity())
}

// sizedDiscriminant re-keys base by sizeHint, the Go stand-in for the
// original's const-generic SIZE parameter: two callers of TakeSized or
// InsertSized with the same PT but different sizeHint never share a slot
// with each other or with the plain (unsized) Take/Insert path. Falling
// back to base when sizeHint doesn't fit a Discriminant's Size field still
// pools correctly, it just loses that separation for pathologically large
// hints.
func sizedDiscriminant(base pool.Discriminant, sizeHint int) pool.Discriminant {
	d, ok := pool.NewSizedDiscriminant(base.Container, uintptr(sizeHint), base.Elements[:]...)
	if !ok {
		return base
	}
	return d
}

// TakeSized is Take keyed additionally on sizeHint: fixed-size
// instantiations of PT with different sizeHint values recycle from
// distinct slots instead of sharing one and handing back a value sized for
// the wrong caller. sizeHint is also passed through to empty for
// pre-allocation when the registry has nothing to recycle.
func TakeSized[T any, PT iso[T]](sizeHint int, empty func(sizeHint int) PT) *LPooled[T, PT] {
	var zero T
	d := sizedDiscriminant(PT(&zero).Discriminant(), sizeHint)

	var v PT
	if ptr, ok := takeRaw(d); ok {
		v = PT(ptr)
	} else {
		v = empty(sizeHint)
	}

	lp := &LPooled[T, PT]{value: v, discriminant: d}
	runtime.SetFinalizer(lp, finalizeLPooled[T, PT])
	return lp
}

// InsertSized is Insert keyed additionally on sizeHint, the counterpart to
// TakeSized: v is offered back into the sizeHint-specific slot, not PT's
// plain Discriminant slot, and admitted against sizeHint as a per-call
// maxElementCapacity override.
func InsertSized[T any, PT iso[T]](v PT, sizeHint int) {
	d := sizedDiscriminant(v.Discriminant(), sizeHint)
	v.Reset()
	if !pool.ReallyDropped(v) {
		v.ReallyDrop()
		return
	}
	insertRawSized(unsafe.Pointer(v), d, v.Capacity(), sizeHint)
}

func discriminantOf[T any, PT iso[T]]() pool.Discriminant {
	var zero T
	return PT(&zero).Discriminant()
}

// SetSize sets the maximum pool size and maximum admitted element capacity
// for PT's discriminant.
func SetSize[T any, PT iso[T]](maxSize, maxElementCapacity int) {
	SetSizeForDiscriminant(discriminantOf[T, PT](), maxSize, maxElementCapacity)
}

// GetSize returns the current limits for PT's discriminant.
func GetSize[T any, PT iso[T]]() (maxSize, maxElementCapacity int) {
	return GetSizeForDiscriminant(discriminantOf[T, PT]())
}

// ClearType discards idle values for PT's discriminant only.
func ClearType[T any, PT iso[T]]() {
	ClearTypeForDiscriminant(discriminantOf[T, PT]())
}
