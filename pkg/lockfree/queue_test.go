package lockfree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMPMCQueueEnqueueDequeueFIFO(t *testing.T) {
	q := NewMPMCQueue[int](4)

	require.True(t, q.Enqueue(1))
	require.True(t, q.Enqueue(2))
	require.True(t, q.Enqueue(3))

	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMPMCQueueCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	q := NewMPMCQueue[int](5)
	assert.Equal(t, 8, q.Cap())
}

func TestMPMCQueueFullReturnsFalse(t *testing.T) {
	q := NewMPMCQueue[int](2)
	require.True(t, q.Enqueue(1))
	require.True(t, q.Enqueue(2))
	assert.False(t, q.Enqueue(3))
}

func TestMPMCQueueEmptyReturnsFalse(t *testing.T) {
	q := NewMPMCQueue[string](2)
	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestMPMCQueueConcurrentProducersConsumers(t *testing.T) {
	q := NewMPMCQueue[int](1024)
	const n = 500

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			for !q.Enqueue(v) {
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < n; i++ {
		v, ok := q.Dequeue()
		require.True(t, ok)
		assert.False(t, seen[v], "value %d dequeued twice", v)
		seen[v] = true
	}

	_, ok := q.Dequeue()
	assert.False(t, ok)
}

func TestAtomicCounter(t *testing.T) {
	var c AtomicCounter
	c.Increment()
	c.Add(5)
	assert.Equal(t, uint64(6), c.Get())
	c.Reset()
	assert.Equal(t, uint64(0), c.Get())
}
