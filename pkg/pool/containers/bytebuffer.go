package containers

import (
	"bytes"

	"github.com/ajitpratap0/poolshark/pkg/pool"
)

var byteBufferLocationID = pool.NewLocationID()

var byteBufferDiscriminant = pool.NewDiscriminant(byteBufferLocationID)

// ByteBuffer wraps a *bytes.Buffer, making it poolable. Unlike Slice and
// Map, ByteBuffer carries no type parameter, so every ByteBuffer shares one
// Discriminant and therefore one pooled slot.
type ByteBuffer struct {
	Buf *bytes.Buffer
}

// NewByteBuffer constructs an empty ByteBuffer with the given initial
// capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{Buf: bytes.NewBuffer(make([]byte, 0, capacity))}
}

// Reset truncates the buffer to empty, keeping its backing array.
func (b *ByteBuffer) Reset() {
	b.Buf.Reset()
}

// Capacity returns the buffer's current capacity.
func (b *ByteBuffer) Capacity() int {
	return b.Buf.Cap()
}

// ReallyDrop satisfies RawPoolable. Reset already truncates the buffer to
// empty; there is nothing beyond that for GC to need help releasing.
func (b *ByteBuffer) ReallyDrop() {}

// Discriminant reports ByteBuffer's fixed packed layout key.
func (b *ByteBuffer) Discriminant() pool.Discriminant {
	return byteBufferDiscriminant
}
