// Package global implements the cross-thread lock-free pool: Pool[T],
// WeakPool[T], and the GPooled[T] wrapper handed back from a take.
//
// Where pool/local recycles storage within one process-wide registry keyed
// by Discriminant, Pool[T] is a standalone, explicitly constructed pool of
// one concrete RawPoolable type, backed by a generic lock-free MPMC queue
// (pkg/lockfree). Go has no Arc/Weak primitive, so the strong/weak
// reference counting that lets a GPooled[T] find its way home without
// keeping the pool alive, and lets it see that every Pool[T] handle has
// gone away (it is then really dropped instead), is reimplemented by hand
// over a shared control block (see DESIGN.md).
package global

import (
	"context"
	"sync/atomic"

	"github.com/ajitpratap0/poolshark/pkg/lockfree"
	"github.com/ajitpratap0/poolshark/pkg/pool"
	"github.com/ajitpratap0/poolshark/pkg/poollog"
	"github.com/ajitpratap0/poolshark/pkg/poolmetrics"
	"github.com/ajitpratap0/poolshark/pkg/pooltrace"
)

type poolInner[T pool.RawPoolable] struct {
	queue              *lockfree.MPMCQueue[T]
	maxPoolSize        int
	maxElementCapacity int
	strong             atomic.Int64
	weak               atomic.Int64
	metrics            *poolmetrics.Collector
	name               string
}

// Pool is a strong handle to a cross-thread pool of T. The zero value is
// not usable; construct one with New.
type Pool[T pool.RawPoolable] struct {
	inner *poolInner[T]
}

// WeakPool is a non-owning handle to the same pool, used by GPooled[T] to
// find its way home without keeping the pool alive on its own. Upgrade
// promotes it back to a strong Pool[T], failing once every strong handle
// has been Release()d.
type WeakPool[T pool.RawPoolable] struct {
	inner *poolInner[T]
}

// New constructs a pool named for metrics purposes, admitting up to
// maxPoolSize idle values of at most maxElementCapacity each.
func New[T pool.RawPoolable](name string, maxPoolSize, maxElementCapacity int) Pool[T] {
	inner := &poolInner[T]{
		queue:              lockfree.NewMPMCQueue[T](maxPoolSize),
		maxPoolSize:        maxPoolSize,
		maxElementCapacity: maxElementCapacity,
		metrics:            poolmetrics.NewCollector(name),
		name:               name,
	}
	inner.strong.Store(1)
	poollog.PoolConstructed(name, maxPoolSize, maxElementCapacity)
	return Pool[T]{inner: inner}
}

// Clone returns an additional strong handle to the same pool. Every clone
// (and the original handle returned by New) must eventually be Release()d.
func (p Pool[T]) Clone() Pool[T] {
	p.inner.strong.Add(1)
	return p
}

// Downgrade returns a non-owning handle to this pool.
func (p Pool[T]) Downgrade() WeakPool[T] {
	p.inner.weak.Add(1)
	return WeakPool[T]{inner: p.inner}
}

// Release gives up this strong handle. Once every strong handle created by
// New/Clone has been released, the pool is considered closed: outstanding
// WeakPool handles fail to Upgrade, GPooled values still in flight are
// really dropped instead of recycled when they are released, and every idle
// value still sitting in the queue is drained and really dropped too.
func (p Pool[T]) Release() {
	if p.inner.strong.Add(-1) != 0 {
		return
	}
	for {
		v, ok := p.inner.queue.Dequeue()
		if !ok {
			break
		}
		v.ReallyDrop()
	}
	p.inner.metrics.SetQueueDepth(p.inner.queue.Len())
}

// Upgrade promotes a WeakPool back to a strong Pool[T], failing if the
// pool's last strong handle has already been released.
func (w WeakPool[T]) Upgrade() (Pool[T], bool) {
	for {
		old := w.inner.strong.Load()
		if old <= 0 {
			return Pool[T]{}, false
		}
		if w.inner.strong.CompareAndSwap(old, old+1) {
			return Pool[T]{inner: w.inner}, true
		}
	}
}

// Take pops an idle value, or calls empty to construct one when the pool
// has nothing to offer. Unlike TryTake, Take never fails to produce a
// value.
func (p Pool[T]) Take(empty func() T) *GPooled[T] {
	if v, ok := p.inner.queue.Dequeue(); ok {
		p.inner.metrics.RecordTake(true)
		return newGPooled(v, p.Downgrade())
	}
	p.inner.metrics.RecordTake(false)
	return newGPooled(empty(), p.Downgrade())
}

// TryTake pops an idle value without ever constructing a new one, failing
// if the pool currently has none to offer.
func (p Pool[T]) TryTake() (*GPooled[T], bool) {
	v, ok := p.inner.queue.Dequeue()
	p.inner.metrics.RecordTake(ok)
	if !ok {
		return nil, false
	}
	return newGPooled(v, p.Downgrade()), true
}

// Len reports the number of idle values currently held.
func (p Pool[T]) Len() int {
	return p.inner.queue.Len()
}

// Put offers v back to the pool, applying the common admission policy.
// GPooled[T]'s release path uses it internally; exported so other
// containers built on top of Pool[T] (pool/shared's Shared[T]) can return
// their own backing allocations without going through a GPooled wrapper.
func (p Pool[T]) Put(v T) {
	p.insert(v)
}

// insert offers v back to the pool, applying the common admission policy.
// A value whose ReallyDropped reports false is left alone, since another
// owner still holds it; any other value that does not end up enqueued is
// really dropped instead.
func (p Pool[T]) insert(v T) {
	v.Reset()
	if !pool.ReallyDropped(v) {
		p.inner.metrics.RecordPut(false)
		return
	}
	if v.Capacity() > p.inner.maxElementCapacity {
		p.inner.metrics.RecordPut(false)
		poollog.AdmissionRejected(p.inner.name, "capacity exceeds maxElementCapacity")
		v.ReallyDrop()
		return
	}
	if p.inner.queue.Len() < p.inner.maxPoolSize && p.inner.queue.Enqueue(v) {
		p.inner.metrics.RecordPut(true)
		p.inner.metrics.SetQueueDepth(p.inner.queue.Len())
		return
	}
	p.inner.metrics.RecordPut(false)
	poollog.AdmissionRejected(p.inner.name, "pool at maxPoolSize")
	v.ReallyDrop()
}

// TakeCtx is Take with an OpenTelemetry span around the operation, for
// callers that want Take/Put/Prune visible in a trace.
func (p Pool[T]) TakeCtx(ctx context.Context, empty func() T) *GPooled[T] {
	_, span := pooltrace.StartSpan(ctx, "pool.take", p.inner.name)
	defer span.End()
	return p.Take(empty)
}

// PutCtx is Put with a span around the operation.
func (p Pool[T]) PutCtx(ctx context.Context, v T) {
	_, span := pooltrace.StartSpan(ctx, "pool.put", p.inner.name)
	defer span.End()
	p.Put(v)
}

// PruneCtx is Prune with a span around the operation.
func (p Pool[T]) PruneCtx(ctx context.Context) {
	_, span := pooltrace.StartSpan(ctx, "pool.prune", p.inner.name)
	defer span.End()
	p.Prune()
}

// Prune shrinks the pool's idle storage: when the pool is near its
// configured capacity it drops roughly a tenth of its idle values,
// otherwise it drops roughly a hundredth, trading a little reuse for
// bounding how much idle memory a bursty pool holds onto indefinitely. It
// never blocks a concurrent Take or insert and never returns an error.
func (p Pool[T]) Prune() {
	depth := p.inner.queue.Len()
	if depth == 0 {
		return
	}

	fraction := 100
	if depth*10 >= p.inner.maxPoolSize*9 {
		fraction = 10
	}

	n := depth / fraction
	if n == 0 {
		n = 1
	}

	evicted := 0
	for i := 0; i < n; i++ {
		if v, ok := p.inner.queue.Dequeue(); ok {
			v.ReallyDrop()
			evicted++
		} else {
			break
		}
	}
	if evicted > 0 {
		p.inner.metrics.RecordPruneEvictions(evicted)
		p.inner.metrics.SetQueueDepth(p.inner.queue.Len())
		poollog.PruneCycle(p.inner.name, evicted, p.inner.queue.Len())
	}
}
