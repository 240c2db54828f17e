package local

import (
	"reflect"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ajitpratap0/poolshark/pkg/pool"
	"github.com/ajitpratap0/poolshark/pkg/poolmetrics"
)

// rawPtr constrains PT to "pointer to T, implementing RawPoolable" — the
// weaker capability TakeAny/InsertAny require, for types that opt out of
// isomorphic Discriminant-based sharing (by implementing Poolable but not
// IsoPoolable) but still want a recycling slot, keyed by reflect.Type
// instead of Discriminant.
type rawPtr[T any] interface {
	*T
	pool.RawPoolable
}

var (
	anyRegistryMu sync.RWMutex
	anyRegistry   = make(map[reflect.Type]*slot)
)

func anySlotFor(t reflect.Type) *slot {
	anyRegistryMu.RLock()
	s, ok := anyRegistry[t]
	anyRegistryMu.RUnlock()
	if ok {
		return s
	}

	anyRegistryMu.Lock()
	defer anyRegistryMu.Unlock()
	if s, ok := anyRegistry[t]; ok {
		return s
	}

	maxSize, maxElementCapacity := defaultLimits()
	s = &slot{
		maxSize:            maxSize,
		maxElementCapacity: maxElementCapacity,
		metrics:            poolmetrics.NewCollector(t.String()),
	}
	anyRegistry[t] = s
	return s
}

// LPooledAny is LPooled's counterpart for TakeAny/InsertAny: identical
// checkout/release story, keyed by reflect.Type instead of Discriminant.
type LPooledAny[T any, PT rawPtr[T]] struct {
	value PT
	typ   reflect.Type
}

// TakeAny checks out a value keyed by T's reflect.Type, recycling one from
// the any-registry's slot when available and otherwise constructing a
// fresh one with empty.
func TakeAny[T any, PT rawPtr[T]](empty func() PT) *LPooledAny[T, PT] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s := anySlotFor(t)

	var v PT
	if ptr, ok := anyTakeRaw(s); ok {
		v = PT(ptr)
	} else {
		v = empty()
	}

	lp := &LPooledAny[T, PT]{value: v, typ: t}
	runtime.SetFinalizer(lp, finalizeLPooledAny[T, PT])
	return lp
}

// InsertAny offers v back to the any-registry directly.
func InsertAny[T any, PT rawPtr[T]](v PT) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s := anySlotFor(t)
	v.Reset()
	if !pool.ReallyDropped(v) {
		v.ReallyDrop()
		return
	}
	anyInsertRaw(s, unsafe.Pointer(v), v.Capacity())
}

// Value returns the wrapped value. It panics if called after Release or
// Detach.
func (lp *LPooledAny[T, PT]) Value() PT {
	if lp.value == nil {
		panic("local: Value called on a released LPooledAny")
	}
	return lp.value
}

// Release resets the value and offers it back to the any-registry.
func (lp *LPooledAny[T, PT]) Release() {
	if lp.value == nil {
		return
	}
	runtime.SetFinalizer(lp, nil)
	lp.release()
}

// Detach clears the finalizer and hands ownership to the caller without
// returning the value to the registry.
func (lp *LPooledAny[T, PT]) Detach() PT {
	v := lp.value
	runtime.SetFinalizer(lp, nil)
	lp.value = nil
	return v
}

func (lp *LPooledAny[T, PT]) release() {
	v := lp.value
	lp.value = nil

	v.Reset()
	if !pool.ReallyDropped(v) {
		v.ReallyDrop()
		return
	}
	s := anySlotFor(lp.typ)
	anyInsertRaw(s, unsafe.Pointer(v), v.Capacity())
}

func finalizeLPooledAny[T any, PT rawPtr[T]](lp *LPooledAny[T, PT]) {
	lp.release()
}

func anyTakeRaw(s *slot) (unsafe.Pointer, bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		s.metrics.RecordTake(false)
		return nil, false
	}

	ptr := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	s.metrics.RecordTake(true)
	s.metrics.SetQueueDepth(len(s.items))
	return ptr, true
}

func anyInsertRaw(s *slot, ptr unsafe.Pointer, cap int) {
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()

	if cap > s.maxElementCapacity || len(s.items) >= s.maxSize {
		s.metrics.RecordPut(false)
		return
	}

	s.items = append(s.items, ptr)
	s.metrics.RecordPut(true)
	s.metrics.SetQueueDepth(len(s.items))
}
