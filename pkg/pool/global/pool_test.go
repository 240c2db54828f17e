package global

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) Reset()        { c.n = 0 }
func (c *counter) Capacity() int { return c.n }
func (c *counter) ReallyDrop()   {}

func TestTakeReleaseRecyclesValue(t *testing.T) {
	p := New[*counter]("test-counter", 8, 1024)

	g := p.Take(func() *counter { return &counter{} })
	first := g.Value()
	first.n = 5
	g.Release()

	g2 := p.Take(func() *counter { return &counter{} })
	assert.Same(t, first, g2.Value())
	assert.Equal(t, 0, g2.Value().n)
	g2.Release()
}

func TestTryTakeFailsWhenEmpty(t *testing.T) {
	p := New[*counter]("test-counter-empty", 8, 1024)
	_, ok := p.TryTake()
	assert.False(t, ok)
}

func TestTryTakeSucceedsAfterRelease(t *testing.T) {
	p := New[*counter]("test-counter-cycle", 8, 1024)

	g := p.Take(func() *counter { return &counter{} })
	g.Release()

	g2, ok := p.TryTake()
	require.True(t, ok)
	g2.Release()
}

func TestOrphanReleaseDoesNotRecycle(t *testing.T) {
	p := New[*counter]("test-counter-orphan", 8, 1024)

	g := Orphan[*counter](&counter{n: 3})
	g.Release()

	assert.Equal(t, 0, p.Len())
}

func TestAssignBindsOrphanToPool(t *testing.T) {
	p := New[*counter]("test-counter-assign", 8, 1024)

	g := Orphan[*counter](&counter{})
	g.Assign(p)
	g.Release()

	assert.Equal(t, 1, p.Len())
}

func TestReleaseAfterPoolGoneReallyDrops(t *testing.T) {
	p := New[*dropTracker]("test-counter-gone", 8, 1024)
	dropped := 0

	g := p.Take(func() *dropTracker { return &dropTracker{dropped: &dropped} })
	p.Release()
	g.Release()
	assert.Equal(t, 1, dropped)

	weak := p.Downgrade()
	_, ok := weak.Upgrade()
	assert.False(t, ok)
}

func TestPruneShrinksIdleStorage(t *testing.T) {
	p := New[*counter]("test-counter-prune", 100, 1024)

	for i := 0; i < 50; i++ {
		g := p.Take(func() *counter { return &counter{} })
		g.Release()
	}
	before := p.Len()
	require.Greater(t, before, 0)

	p.Prune()
	assert.Less(t, p.Len(), before)
}

func TestDetachDoesNotRecycle(t *testing.T) {
	p := New[*counter]("test-counter-detach", 8, 1024)

	g := p.Take(func() *counter { return &counter{} })
	v := g.Detach()
	require.NotNil(t, v)
	assert.Equal(t, 0, p.Len())
}

type dropTracker struct {
	n       int
	dropped *int
}

func (d *dropTracker) Reset()        { d.n = 0 }
func (d *dropTracker) Capacity() int { return d.n }
func (d *dropTracker) ReallyDrop()   { *d.dropped++ }

func TestReleasingLastStrongHandleReallyDropsEveryQueuedValue(t *testing.T) {
	p := New[*dropTracker]("test-drop-tracker", 16, 1024)
	dropped := 0

	handles := make([]*GPooled[*dropTracker], 10)
	for i := range handles {
		handles[i] = p.Take(func() *dropTracker { return &dropTracker{dropped: &dropped} })
	}
	for _, g := range handles {
		g.Release()
	}
	require.Equal(t, 10, p.Len())

	p.Release()
	assert.Equal(t, 10, dropped)
	assert.Equal(t, 0, p.Len())
}

func TestCtxVariantsRoundTripLikeTheirPlainCounterparts(t *testing.T) {
	ctx := context.Background()
	p := New[*counter]("test-counter-ctx", 8, 1024)

	g := p.TakeCtx(ctx, func() *counter { return &counter{} })
	g.Value().n = 7
	p.PutCtx(ctx, g.Detach())

	g2 := p.TakeCtx(ctx, func() *counter { return &counter{} })
	assert.Equal(t, 0, g2.Value().n)
	g2.Release()

	for i := 0; i < 50; i++ {
		h := p.Take(func() *counter { return &counter{} })
		h.Release()
	}
	before := p.Len()
	require.Greater(t, before, 0)

	p.PruneCtx(ctx)
	assert.Less(t, p.Len(), before)
}
