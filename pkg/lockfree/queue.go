// Package lockfree provides lock-free data structures for high-performance
// concurrent pooling.
package lockfree

import (
	"runtime"
	"sync/atomic"
)

// MPMCQueue implements a lock-free, bounded, multi-producer multi-consumer
// queue using sequence numbers for ordering and cache-line padding to avoid
// false sharing. This backs the cross-thread global pool (pool/global):
// every idle pooled value lives in one of these until a goroutine takes it.
//
// Enqueue/Dequeue order is FIFO. The queue never blocks: Enqueue returns
// false when full, Dequeue returns false when empty.
type MPMCQueue[T any] struct {
	buffer   []slot[T]
	capacity uint64
	mask     uint64

	// Separate enqueue and dequeue indices on different cache lines.
	enqueuePos atomic.Uint64
	_padding1  [7]uint64 //nolint:unused

	dequeuePos atomic.Uint64
	_padding2  [7]uint64 //nolint:unused
}

// slot represents a queue slot with sequence number for ordering.
type slot[T any] struct {
	sequence atomic.Uint64
	data     T
}

// NewMPMCQueue creates a new multi-producer multi-consumer queue with the
// given capacity. Capacity is rounded up to the next power of 2 for
// efficient masking.
func NewMPMCQueue[T any](capacity int) *MPMCQueue[T] {
	cap := uint64(1)
	for cap < uint64(capacity) {
		cap <<= 1
	}

	q := &MPMCQueue[T]{
		buffer:   make([]slot[T], cap),
		capacity: cap,
		mask:     cap - 1,
	}

	for i := uint64(0); i < cap; i++ {
		q.buffer[i].sequence.Store(i)
	}

	return q
}

// Enqueue adds an item to the queue. Returns false if the queue is full.
func (q *MPMCQueue[T]) Enqueue(item T) bool {
	for {
		pos := q.enqueuePos.Load()
		s := &q.buffer[pos&q.mask]
		seq := s.sequence.Load()

		diff := int64(seq) - int64(pos)

		if diff == 0 {
			if q.enqueuePos.CompareAndSwap(pos, pos+1) {
				s.data = item
				s.sequence.Store(pos + 1)
				return true
			}
		} else if diff < 0 {
			return false
		}

		runtime.Gosched()
	}
}

// Dequeue removes an item from the queue. Returns false if the queue is
// empty.
func (q *MPMCQueue[T]) Dequeue() (T, bool) {
	for {
		pos := q.dequeuePos.Load()
		s := &q.buffer[pos&q.mask]
		seq := s.sequence.Load()

		diff := int64(seq) - int64(pos+1)

		if diff == 0 {
			if q.dequeuePos.CompareAndSwap(pos, pos+1) {
				data := s.data
				var zero T
				s.data = zero
				s.sequence.Store(pos + q.capacity)
				return data, true
			}
		} else if diff < 0 {
			var zero T
			return zero, false
		}

		runtime.Gosched()
	}
}

// Len returns an approximation of the current queue length. Exact under no
// concurrent mutation; may be stale otherwise.
func (q *MPMCQueue[T]) Len() int {
	enq := q.enqueuePos.Load()
	deq := q.dequeuePos.Load()
	if enq >= deq {
		return int(enq - deq)
	}
	return 0
}

// Cap returns the queue's fixed capacity (rounded up to a power of 2).
func (q *MPMCQueue[T]) Cap() int {
	return int(q.capacity)
}

// AtomicCounter provides a lock-free counter for pool statistics (takes,
// puts, hits, misses) with atomic operations for thread-safe updates.
type AtomicCounter struct {
	value atomic.Uint64
}

// Increment atomically increments the counter by one.
func (c *AtomicCounter) Increment() {
	c.value.Add(1)
}

// Add atomically adds the given delta value to the counter.
func (c *AtomicCounter) Add(delta uint64) {
	c.value.Add(delta)
}

// Get returns the current value of the counter atomically.
func (c *AtomicCounter) Get() uint64 {
	return c.value.Load()
}

// Reset atomically resets the counter to zero.
func (c *AtomicCounter) Reset() {
	c.value.Store(0)
}
