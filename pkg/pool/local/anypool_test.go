package local

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainCounter struct {
	n int
}

func (c *plainCounter) Reset()        { c.n = 0 }
func (c *plainCounter) Capacity() int { return c.n }
func (c *plainCounter) ReallyDrop()   {}

func TestTakeAnyRecyclesByType(t *testing.T) {
	lp := TakeAny(func() *plainCounter { return &plainCounter{} })
	first := lp.Value()
	first.n = 3
	lp.Release()

	lp2 := TakeAny(func() *plainCounter { return &plainCounter{} })
	assert.Same(t, first, lp2.Value())
	assert.Equal(t, 0, lp2.Value().n)
	lp2.Release()
}

func TestInsertAnyThenTakeRawRoundTrips(t *testing.T) {
	InsertAny[plainCounter, *plainCounter](&plainCounter{n: 5})

	t2 := reflect.TypeOf((*plainCounter)(nil)).Elem()
	ptr, ok := anyTakeRaw(anySlotFor(t2))
	require.True(t, ok)
	assert.NotNil(t, ptr)
}
