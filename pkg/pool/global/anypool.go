package global

import (
	"reflect"
	"sync"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

// PoolAny and TakeAny provide an ambient, process-wide registry of
// cross-thread pools keyed by reflect.Type, for callers who want a
// singleton pool per type without constructing and threading through a
// Pool[T] handle themselves.
var (
	anyMu    sync.RWMutex
	anyPools = make(map[reflect.Type]any)

	anyDefaultMu                 sync.RWMutex
	anyDefaultMaxPoolSize        = 256
	anyDefaultMaxElementCapacity = 1 << 20
)

// SetAnyDefaultLimits changes the limits a PoolAny singleton is created
// with the first time it is requested for a given type. It has no effect
// on pools already created.
func SetAnyDefaultLimits(maxPoolSize, maxElementCapacity int) {
	anyDefaultMu.Lock()
	defer anyDefaultMu.Unlock()
	anyDefaultMaxPoolSize = maxPoolSize
	anyDefaultMaxElementCapacity = maxElementCapacity
}

func anyDefaultLimits() (int, int) {
	anyDefaultMu.RLock()
	defer anyDefaultMu.RUnlock()
	return anyDefaultMaxPoolSize, anyDefaultMaxElementCapacity
}

// PoolAny returns the process-wide singleton Pool[T], constructing it on
// first use.
func PoolAny[T pool.RawPoolable]() Pool[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()

	anyMu.RLock()
	if p, ok := anyPools[t]; ok {
		anyMu.RUnlock()
		return p.(Pool[T])
	}
	anyMu.RUnlock()

	anyMu.Lock()
	defer anyMu.Unlock()
	if p, ok := anyPools[t]; ok {
		return p.(Pool[T])
	}

	maxPoolSize, maxElementCapacity := anyDefaultLimits()
	p := New[T](t.String(), maxPoolSize, maxElementCapacity)
	anyPools[t] = p
	return p
}

// TakeAny checks out a value from T's singleton pool, constructing one
// with empty when the pool has nothing to offer.
func TakeAny[T pool.RawPoolable](empty func() T) *GPooled[T] {
	return PoolAny[T]().Take(empty)
}
