package containers

import "github.com/ajitpratap0/poolshark/pkg/pool"

var mapLocationID = pool.NewLocationID()

// Map wraps a map[K]V, making it poolable. Reset clears every entry with
// the built-in clear(), keeping the map's internal bucket allocation for
// reuse instead of discarding it and letting a fresh map reallocate.
//
// Go maps expose no capacity introspection, so Capacity reports len()
// rather than an allocated-bucket count; a Map recycled through this
// adapter is size-limited by entry count, not by the memory it actually
// holds onto. Two Map[K,V] instantiations sharing a Discriminant also
// share K and V's combined layout; Go maps have no per-instance custom
// hash function to factor into that key.
type Map[K comparable, V any] struct {
	Entries map[K]V
}

// NewMap constructs an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{Entries: make(map[K]V)}
}

// Reset clears every entry, keeping the underlying map allocation.
func (m *Map[K, V]) Reset() {
	clear(m.Entries)
}

// Capacity returns the map's current entry count.
func (m *Map[K, V]) Capacity() int {
	return len(m.Entries)
}

// ReallyDrop satisfies RawPoolable. Reset already clears every entry; there
// is nothing beyond that for GC to need help releasing.
func (m *Map[K, V]) ReallyDrop() {}

// Discriminant reports the packed layout key for Map[K,V], derived from K
// and V's combined layout.
func (m *Map[K, V]) Discriminant() pool.Discriminant {
	return mapDiscriminant[K, V]()
}

func mapDiscriminant[K comparable, V any]() pool.Discriminant {
	kSize, kAlign := elementLayout[K]()
	vSize, vAlign := elementLayout[V]()

	kLayout, kOK := pool.PackLayout(kSize, kAlign)
	vLayout, vOK := pool.PackLayout(vSize, vAlign)

	switch {
	case kOK && vOK:
		return pool.NewDiscriminant(mapLocationID, kLayout, vLayout)
	case kOK:
		// Value layout doesn't pack; fall back to a sized Discriminant keyed
		// on K's layout and V's size, which never collapses with an ordinary
		// (packable) Map instantiation or with one of a different value size.
		pool.ReportPackFailure(mapLocationID, "Map value", vSize, vAlign)
		clamped := vSize
		if clamped >= uintptr(pool.NoSize) {
			clamped = uintptr(pool.NoSize) - 1
		}
		d, _ := pool.NewSizedDiscriminant(mapLocationID, clamped, kLayout)
		return d
	default:
		// Key layout doesn't pack (rare: very large or oddly aligned key
		// types); fall back to a sized Discriminant that never collapses
		// with another Map instantiation of a different key size.
		pool.ReportPackFailure(mapLocationID, "Map key", kSize, kAlign)
		clamped := kSize
		if clamped >= uintptr(pool.NoSize) {
			clamped = uintptr(pool.NoSize) - 1
		}
		d, _ := pool.NewSizedDiscriminant(mapLocationID, clamped)
		return d
	}
}
