package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type anyCounter struct {
	n int
}

func (c *anyCounter) Reset()        { c.n = 0 }
func (c *anyCounter) Capacity() int { return c.n }
func (c *anyCounter) ReallyDrop()   {}

func TestPoolAnyReturnsSameSingleton(t *testing.T) {
	a := PoolAny[*anyCounter]()
	b := PoolAny[*anyCounter]()
	assert.Same(t, a.inner, b.inner)
}

func TestTakeAnyRecyclesAcrossCalls(t *testing.T) {
	g := TakeAny(func() *anyCounter { return &anyCounter{} })
	first := g.Value()
	first.n = 4
	g.Release()

	g2 := TakeAny(func() *anyCounter { return &anyCounter{} })
	assert.Same(t, first, g2.Value())
	assert.Equal(t, 0, g2.Value().n)
	g2.Release()
}
