package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type plainPoolable struct{ n int }

func (p *plainPoolable) Reset()        { p.n = 0 }
func (p *plainPoolable) Capacity() int { return p.n }

type aliasedPoolable struct {
	plainPoolable
	terminal bool
}

func (v *aliasedPoolable) ReallyDropped() bool { return v.terminal }

func TestReallyDroppedDefaultsTrue(t *testing.T) {
	p := &plainPoolable{n: 1}
	assert.True(t, ReallyDropped(p))
}

func TestReallyDroppedHonorsAliasedCheck(t *testing.T) {
	v := &aliasedPoolable{terminal: true}
	assert.True(t, ReallyDropped(v))

	v.terminal = false
	assert.False(t, ReallyDropped(v))
}
