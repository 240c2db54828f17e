// Package pool defines the capability contracts and the Discriminant key
// that poolshark's registries (pool/local, pool/global, pool/shared) are
// built around. A value becomes poolable by implementing Poolable; it
// becomes eligible for isomorphic slot-sharing across unrelated generic
// instantiations by additionally implementing IsoPoolable.
package pool

// Poolable is the baseline capability contract for any value a registry can
// recycle. Empty() is deliberately not part of this interface: Go generics
// have no way to construct "the zero-ish value of T" from an interface
// method alone, so every registry constructor in this module takes an
// explicit empty func() T argument instead, the same way sync.Pool takes a
// New func() any.
type Poolable interface {
	// Reset clears the value back to its empty state before it is admitted
	// back into a pool. Called exactly once per release, before the
	// admission-policy capacity check.
	Reset()

	// Capacity reports a size figure (element count, byte length, whatever
	// is meaningful for the concrete type) used by the admission policy to
	// reject oversized values instead of recycling them.
	Capacity() int
}

// ReallyDropper is an optional capability for aliased/shared types that need
// to report whether a given drop is the terminal one. A plain, non-aliased
// Poolable type has no other owners, so every drop is terminal and this
// interface defaults to true when absent. No type in this module implements
// it: Shared[T] and ThinShared[T] make the terminal-drop decision in their
// own Release, off their strong count, before offering the allocation back.
type ReallyDropper interface {
	// ReallyDropped reports whether this drop is the terminal one: the last
	// owner releasing the value, making it eligible for recycling. A value
	// still aliased elsewhere returns false so the registry leaves it alone.
	ReallyDropped() bool
}

// ReallyDropped applies the ReallyDropper optional-interface default
// described above. Registries call this after Reset() and before the
// capacity check; a true result means the value may proceed to the
// admission-policy capacity check, a false result means it must be left
// alone (some other owner still holds it).
func ReallyDropped(v any) bool {
	if rd, ok := v.(ReallyDropper); ok {
		return rd.ReallyDropped()
	}
	return true
}

// IsoPoolable is Poolable plus a Discriminant, and is what makes isomorphic
// slot-sharing possible: two IsoPoolable types with an identical
// Discriminant recycle each other's backing storage even though they are
// otherwise unrelated generic instantiations. Discriminant is an instance
// method rather than an associated constant (which Go generics have no
// equivalent of) so that registries can call it against a zero value of T
// at registration time, before any real value exists.
type IsoPoolable interface {
	Poolable
	Discriminant() Discriminant
}

// RawPoolable is the contract for values a pool/global.Pool[T] stores
// (ordinary pooled values as well as Shared and ThinShared allocations),
// and, together with IsoPoolable, for values the pool/local registry
// recycles (the pool/containers adapters implement both). The LPooled and
// GPooled wrappers do not implement it themselves; they hold a value that
// does. ReallyDrop is the one addition over Poolable: it is the
// actually-drop-this-for-good hook a registry calls once a value has
// failed admission (full queue, oversized, or a strong-handle count that
// reached zero with no pool left to return to), distinct from Reset, which
// only clears a value that IS going back into circulation.
type RawPoolable interface {
	Poolable

	// ReallyDrop releases whatever a Reset does not — anything the value
	// holds onto that must go away for good when it will never be recycled.
	// Most wrapper types have nothing beyond Reset to do here.
	ReallyDrop()
}
