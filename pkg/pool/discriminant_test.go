package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackLayoutRoundTrips(t *testing.T) {
	l, ok := PackLayout(24, 8)
	require.True(t, ok)
	assert.Equal(t, 24, l.Size())
	assert.Equal(t, 8, l.Align())
	assert.Equal(t, 3, l.AlignLog2())
}

func TestPackLayoutRejectsOversizedElement(t *testing.T) {
	_, ok := PackLayout(0x1000, 8)
	assert.False(t, ok)
}

func TestPackLayoutRejectsNonPowerOfTwoAlign(t *testing.T) {
	_, ok := PackLayout(16, 3)
	assert.False(t, ok)
}

func TestPackLayoutRejectsOversizedAlign(t *testing.T) {
	_, ok := PackLayout(16, 1<<20)
	assert.False(t, ok)
}

func TestNewDiscriminantNoElementsDefaultsToNoSize(t *testing.T) {
	loc := NewLocationID()
	d := NewDiscriminant(loc)
	assert.Equal(t, loc, d.Container)
	assert.Equal(t, NoSize, d.Size)
}

func TestNewDiscriminantTwoElementsShareAcrossTypes(t *testing.T) {
	loc := NewLocationID()
	e0, _ := PackLayout(8, 8)
	e1, _ := PackLayout(8, 8)

	dInt64s := NewDiscriminant(loc, e0, e1)
	dFloat64s := NewDiscriminant(loc, e0, e1)

	// Two distinct generic instantiations with identical layout collapse
	// to the same Discriminant, making them map to the same pooled slot.
	assert.Equal(t, dInt64s, dFloat64s)
}

func TestNewDiscriminantPanicsOnTooManyElements(t *testing.T) {
	loc := NewLocationID()
	e, _ := PackLayout(8, 8)
	assert.Panics(t, func() {
		NewDiscriminant(loc, e, e, e)
	})
}

func TestNewSizedDiscriminantCarriesSizeIntoEquality(t *testing.T) {
	loc := NewLocationID()
	e, _ := PackLayout(8, 8)

	d16, ok := NewSizedDiscriminant(loc, 16, e)
	require.True(t, ok)
	assert.Equal(t, uint16(16), d16.Size)

	d32, ok := NewSizedDiscriminant(loc, 32, e)
	require.True(t, ok)

	// Same container, same element layout, different const size: distinct
	// Discriminants, so they never share a pooled slot.
	assert.NotEqual(t, d16, d32)
}

func TestNewSizedDiscriminantRejectsSizeAtOrAboveNoSize(t *testing.T) {
	loc := NewLocationID()
	_, ok := NewSizedDiscriminant(loc, uintptr(NoSize))
	assert.False(t, ok)
}

func TestNewLocationIDIsUnique(t *testing.T) {
	a := NewLocationID()
	b := NewLocationID()
	assert.NotEqual(t, a, b)
}
