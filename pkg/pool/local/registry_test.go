package local

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

var sharedLoc = pool.NewLocationID()

func sharedDiscriminant() pool.Discriminant {
	e, _ := pool.PackLayout(8, 8)
	return pool.NewDiscriminant(sharedLoc, e)
}

type intBox struct {
	n int64
}

func (b *intBox) Reset()                         { b.n = 0 }
func (b *intBox) Capacity() int                   { return 1 }
func (b *intBox) Discriminant() pool.Discriminant { return sharedDiscriminant() }
func (b *intBox) ReallyDrop()                     {}

type floatBox struct {
	f float64
}

func (b *floatBox) Reset()                         { b.f = 0 }
func (b *floatBox) Capacity() int                   { return 1 }
func (b *floatBox) Discriminant() pool.Discriminant { return sharedDiscriminant() }
func (b *floatBox) ReallyDrop()                     {}

func TestTakeReleaseResetsValue(t *testing.T) {
	ClearTypeForDiscriminant(sharedDiscriminant())

	lp := Take(func() *intBox { return &intBox{} })
	lp.Value().n = 42
	lp.Release()

	lp2 := Take(func() *intBox { return &intBox{} })
	assert.Equal(t, int64(0), lp2.Value().n)
	lp2.Release()
}

func TestTwoTypesShareBackingStorage(t *testing.T) {
	ClearTypeForDiscriminant(sharedDiscriminant())

	lp := Take(func() *intBox { return &intBox{} })
	backing := lp.Value()
	backing.n = 7
	lp.Release()

	lf := Take(func() *floatBox { return &floatBox{} })
	require.NotNil(t, lf.Value())
	// The float box recycled the exact same backing storage the int box
	// released (same address), and it was Reset() (zeroed) on the way in.
	assert.Equal(t, unsafe.Pointer(backing), unsafe.Pointer(lf.Value()))
	assert.Equal(t, float64(0), lf.Value().f)
	lf.Release()
}

func TestDetachDoesNotReinsert(t *testing.T) {
	ClearTypeForDiscriminant(sharedDiscriminant())

	lp := Take(func() *intBox { return &intBox{} })
	v := lp.Detach()
	require.NotNil(t, v)

	_, ok := takeRaw(sharedDiscriminant())
	assert.False(t, ok)
}

func TestSetSizeAndGetSize(t *testing.T) {
	SetSize[intBox, *intBox](4, 64)
	maxSize, maxElementCapacity := GetSize[intBox, *intBox]()
	assert.Equal(t, 4, maxSize)
	assert.Equal(t, 64, maxElementCapacity)
}

func TestInsertRejectsWhenSlotFull(t *testing.T) {
	d := sharedDiscriminant()
	SetSizeForDiscriminant(d, 1, 1024)
	ClearTypeForDiscriminant(d)

	lp1 := Take(func() *intBox { return &intBox{} })
	lp2 := Take(func() *intBox { return &intBox{} })
	lp1.Release()
	lp2.Release()

	// With maxSize 1, only the first of the two releases above is retained.
	_, ok := takeRaw(d)
	assert.True(t, ok)
	_, ok = takeRaw(d)
	assert.False(t, ok)
}

func TestTakeSizedNeverSharesASlotWithPlainInsert(t *testing.T) {
	ClearType[intBox, *intBox]()
	ClearTypeForDiscriminant(sizedDiscriminant(sharedDiscriminant(), 16))

	Insert[intBox, *intBox](&intBox{n: 9})

	lp := TakeSized(16, func(sizeHint int) *intBox { return &intBox{n: int64(sizeHint)} })
	assert.Equal(t, int64(16), lp.Value().n, "TakeSized(16) must not recycle a plain Insert")
	lp.Release()
}

func TestInsertSizedAndTakeSizedRoundTripOnMatchingSizeHint(t *testing.T) {
	ClearTypeForDiscriminant(sizedDiscriminant(sharedDiscriminant(), 16))

	InsertSized[intBox, *intBox](&intBox{n: 99}, 16)

	lp := TakeSized(16, func(sizeHint int) *intBox { return &intBox{n: int64(sizeHint)} })
	assert.Equal(t, int64(0), lp.Value().n, "recycled from InsertSized(16), Reset zeroed it")
	lp.Release()
}

func TestTakeSizedNeverSharesASlotAcrossDifferentSizeHints(t *testing.T) {
	ClearTypeForDiscriminant(sizedDiscriminant(sharedDiscriminant(), 16))
	ClearTypeForDiscriminant(sizedDiscriminant(sharedDiscriminant(), 32))

	InsertSized[intBox, *intBox](&intBox{n: 77}, 16)

	lp := TakeSized(32, func(sizeHint int) *intBox { return &intBox{n: int64(sizeHint)} })
	assert.Equal(t, int64(32), lp.Value().n, "TakeSized(32) must not recycle InsertSized(16)")
	lp.Release()
}
