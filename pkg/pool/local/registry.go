// Package local implements the thread-local pool registry and its wrapper
// type, LPooled[T].
//
// Go has no stable thread-local-storage primitive, so this registry is a
// process-wide registry instead: one map from Discriminant to a recycling
// slot, shared by every goroutine, with a per-slot mutex's TryLock standing
// in for a reentrancy guard (see DESIGN.md). The isomorphic sharing this
// registry exists for — recycling one Discriminant's storage across
// otherwise-unrelated generic instantiations — is implemented by storing
// values as untyped pointers and reinterpreting them via unsafe.Pointer on
// the way back out, which is safe exactly when the Discriminant contract
// holds (every IsoPoolable type sharing a Discriminant has identical
// memory layout).
package local

import (
	"sync"
	"unsafe"

	"github.com/ajitpratap0/poolshark/pkg/pool"
	"github.com/ajitpratap0/poolshark/pkg/poollog"
	"github.com/ajitpratap0/poolshark/pkg/poolmetrics"
)

type slot struct {
	mu                 sync.Mutex
	items              []unsafe.Pointer
	maxSize            int
	maxElementCapacity int
	metrics            *poolmetrics.Collector
}

var (
	registryMu sync.RWMutex
	registry   = make(map[pool.Discriminant]*slot)

	defaultMu                 sync.RWMutex
	defaultMaxSize            = 256
	defaultMaxElementCapacity = 1 << 20
)

// SetDefaultLimits changes the limits newly created slots start with. It
// has no effect on slots that already exist; use SetSize to change an
// existing discriminant's limits.
func SetDefaultLimits(maxSize, maxElementCapacity int) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultMaxSize = maxSize
	defaultMaxElementCapacity = maxElementCapacity
}

func defaultLimits() (int, int) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultMaxSize, defaultMaxElementCapacity
}

func slotFor(d pool.Discriminant) *slot {
	registryMu.RLock()
	s, ok := registry[d]
	registryMu.RUnlock()
	if ok {
		return s
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if s, ok := registry[d]; ok {
		return s
	}

	maxSize, maxElementCapacity := defaultLimits()
	s = &slot{
		maxSize:            maxSize,
		maxElementCapacity: maxElementCapacity,
		metrics:            poolmetrics.NewCollector(d.String()),
	}
	registry[d] = s
	poollog.PoolConstructed(d.String(), maxSize, maxElementCapacity)
	return s
}

// SetSizeForDiscriminant sets the maximum pool size and maximum admitted
// element capacity for d's slot, creating it if it does not exist yet. The
// generic SetSize wrapper in ops.go is the API surface most callers use; this
// one exists for adapters (pool/containers) that already have a
// Discriminant in hand without a concrete IsoPoolable type to name.
func SetSizeForDiscriminant(d pool.Discriminant, maxSize, maxElementCapacity int) {
	s := slotFor(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSize = maxSize
	s.maxElementCapacity = maxElementCapacity
}

// GetSizeForDiscriminant returns d's slot's current limits.
func GetSizeForDiscriminant(d pool.Discriminant) (maxSize, maxElementCapacity int) {
	s := slotFor(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSize, s.maxElementCapacity
}

// Clear discards every idle value across every discriminant's slot.
func Clear() {
	registryMu.RLock()
	slots := make([]*slot, 0, len(registry))
	for _, s := range registry {
		slots = append(slots, s)
	}
	registryMu.RUnlock()

	for _, s := range slots {
		s.mu.Lock()
		s.items = nil
		s.mu.Unlock()
	}
}

// ClearTypeForDiscriminant discards idle values for one discriminant only.
// The generic ClearType wrapper in ops.go is the API surface most callers use.
func ClearTypeForDiscriminant(d pool.Discriminant) {
	s := slotFor(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// takeRaw pops a pointer from d's slot, or returns (nil, false) when the
// slot is empty or its mutex is already held by an outer call on the same
// goroutine (reentrancy guard).
func takeRaw(d pool.Discriminant) (unsafe.Pointer, bool) {
	s := slotFor(d)
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

// insertRaw offers ptr back to d's slot, applying the common admission
// policy. cap is the value's already-computed Capacity(). Every rejection
// path here is silent: a full pool, an oversized value, or a reentrant
// caller all simply drop ptr on the floor.
func insertRaw(ptr unsafe.Pointer, d pool.Discriminant, cap int) {
	insertRawSized(ptr, d, cap, 0)
}

// insertRawSized is insertRaw with a per-call capacity override: a
// positive maxCapOverride replaces the slot's configured
// maxElementCapacity for this one admission decision, the mechanism
// InsertSized uses to admit (or reject) a value against a caller-supplied
// size hint instead of the discriminant's default.
func insertRawSized(ptr unsafe.Pointer, d pool.Discriminant, cap, maxCapOverride int) {
	s := slotFor(d)
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()

	maxElementCapacity := s.maxElementCapacity
	if maxCapOverride > 0 {
		maxElementCapacity = maxCapOverride
	}

	if cap > maxElementCapacity {
		s.metrics.RecordPut(false)
		poollog.AdmissionRejected(d.String(), "capacity exceeds maxElementCapacity")
		return
	}
	if len(s.items) >= s.maxSize {
		s.metrics.RecordPut(false)
		poollog.AdmissionRejected(d.String(), "slot at maxSize")
		return
	}

	s.items = append(s.items, ptr)
	s.metrics.RecordPut(true)
	s.metrics.SetQueueDepth(len(s.items))
}
