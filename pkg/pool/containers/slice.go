// Package containers provides thin IsoPoolable adapters for Go's own
// built-in containers: slices, maps, and byte buffers. Each adapter gets
// its own LocationID, so two slices of different element types only share
// backing storage through the normal Discriminant rules: same element
// layout, same container LocationID.
package containers

import "github.com/ajitpratap0/poolshark/pkg/pool"

var sliceLocationID = pool.NewLocationID()

// Slice wraps a []T, making it poolable. Reset truncates the slice back to
// length 0 without discarding the underlying array, so a recycled Slice
// keeps whatever capacity it grew to.
type Slice[T any] struct {
	Items []T
}

// NewSlice constructs an empty Slice with the given initial capacity.
func NewSlice[T any](capacity int) *Slice[T] {
	return &Slice[T]{Items: make([]T, 0, capacity)}
}

// Reset truncates the slice to length 0, keeping its backing array.
func (s *Slice[T]) Reset() {
	s.Items = s.Items[:0]
}

// Capacity returns the slice's current capacity.
func (s *Slice[T]) Capacity() int {
	return cap(s.Items)
}

// ReallyDrop satisfies RawPoolable. Reset already truncates the slice to
// length 0; there is nothing beyond that for GC to need help releasing.
func (s *Slice[T]) ReallyDrop() {}

// Discriminant reports the packed layout key for Slice[T], derived from
// T's element layout. Two Slice instantiations over differently named but
// identically laid-out element types collapse to the same Discriminant and
// recycle each other's backing array.
func (s *Slice[T]) Discriminant() pool.Discriminant {
	return sliceDiscriminant[T]()
}

func sliceDiscriminant[T any]() pool.Discriminant {
	elemSize, elemAlign := elementLayout[T]()
	layout, ok := pool.PackLayout(elemSize, elemAlign)
	if !ok {
		// An element layout too large or too misaligned to pack as an
		// Elements slot falls back to a sized Discriminant keyed on the
		// element size directly: this Slice[T] still pools correctly, it
		// simply never shares storage with a different oversized element
		// type (or another oversized type of a different size).
		pool.ReportPackFailure(sliceLocationID, "Slice element", elemSize, elemAlign)
		clamped := elemSize
		if clamped >= uintptr(pool.NoSize) {
			clamped = uintptr(pool.NoSize) - 1
		}
		d, _ := pool.NewSizedDiscriminant(sliceLocationID, clamped)
		return d
	}
	return pool.NewDiscriminant(sliceLocationID, layout)
}
