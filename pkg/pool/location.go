package pool

import "sync/atomic"

var nextLocationID atomic.Uint32

// NewLocationID assigns a fresh, process-unique LocationID. Call it once per
// container shape, typically from a package-level var initializer, one id
// per container definition:
//
//	var sliceLocationID = pool.NewLocationID()
//
// NewLocationID panics if more than 65535 locations are ever registered in
// one process — in practice, one per container shape defined in source,
// never a runtime-scaling quantity.
func NewLocationID() LocationID {
	id := nextLocationID.Add(1)
	if id > 0xFFFF {
		panic("pool: exhausted the 16-bit LocationID space")
	}
	return LocationID(id)
}
