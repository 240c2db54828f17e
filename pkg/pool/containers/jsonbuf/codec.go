// Package jsonbuf provides a pooled JSON encode/decode scratch buffer,
// backed by a containers.ByteBuffer recycled through pool/local rather than
// a bare sync.Pool. It demonstrates a real consumer of the ByteBuffer
// adapter rather than adding a second, parallel buffer-pooling mechanism.
package jsonbuf

import (
	"bytes"

	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/poolshark/pkg/pool/containers"
	"github.com/ajitpratap0/poolshark/pkg/pool/local"
)

// Codec holds one scratch containers.ByteBuffer and the goccy/go-json
// encoder/decoder bound to it. Acquire a Codec, use it, then Release it;
// the scratch buffer recycles through the same local registry every other
// IsoPoolable value does.
type Codec struct {
	lp  *local.LPooled[containers.ByteBuffer, *containers.ByteBuffer]
	buf *containers.ByteBuffer
	enc *gojson.Encoder
}

// Acquire checks out a scratch buffer and wraps it with a JSON encoder.
func Acquire() *Codec {
	lp := local.Take(func() *containers.ByteBuffer {
		return containers.NewByteBuffer(4096)
	})
	buf := lp.Value()
	enc := gojson.NewEncoder(buf.Buf)
	enc.SetEscapeHTML(false)
	return &Codec{lp: lp, buf: buf, enc: enc}
}

// Marshal encodes v into the codec's scratch buffer, truncating whatever
// it previously held, and returns a copy of the resulting bytes (the
// scratch buffer is reused the instant Release is called, so its contents
// cannot be returned by reference).
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	c.buf.Buf.Reset()
	if err := c.enc.Encode(v); err != nil {
		return nil, err
	}
	out := make([]byte, c.buf.Buf.Len())
	copy(out, c.buf.Buf.Bytes())
	return out, nil
}

// Unmarshal decodes data into v using goccy/go-json directly; decoding
// needs no scratch buffer of its own, so it bypasses the pooled encoder
// path entirely.
func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	return gojson.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Release returns the scratch buffer to the local registry. The Codec must
// not be used after calling Release.
func (c *Codec) Release() {
	c.lp.Release()
	c.lp = nil
	c.buf = nil
	c.enc = nil
}

// Marshal is a convenience one-shot encode that acquires, encodes, and
// releases a Codec for a single value.
func Marshal(v interface{}) ([]byte, error) {
	c := Acquire()
	defer c.Release()
	return c.Marshal(v)
}

// Unmarshal is a convenience one-shot decode using goccy/go-json directly.
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}
