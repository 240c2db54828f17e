package jsonbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	data, err := Marshal(payload{Name: "widget", Count: 3})
	require.NoError(t, err)

	var got payload
	require.NoError(t, Unmarshal(data, &got))
	assert.Equal(t, payload{Name: "widget", Count: 3}, got)
}

func TestCodecReusesScratchBufferAcrossAcquires(t *testing.T) {
	c := Acquire()
	buf := c.buf
	first, err := c.Marshal(payload{Name: "a", Count: 1})
	require.NoError(t, err)
	c.Release()

	c2 := Acquire()
	assert.Same(t, buf, c2.buf)
	second, err := c2.Marshal(payload{Name: "b", Count: 2})
	require.NoError(t, err)
	c2.Release()

	assert.NotEqual(t, first, second)
}
