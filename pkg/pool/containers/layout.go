package containers

import "unsafe"

// elementLayout reports T's size and alignment, used to derive a
// Discriminant for a generic container adapter from its element type.
func elementLayout[T any]() (uintptr, uintptr) {
	var zero T
	return unsafe.Sizeof(zero), unsafe.Alignof(zero)
}
