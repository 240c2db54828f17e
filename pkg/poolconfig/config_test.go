package poolconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.DefaultMaxPoolSize, 0)
	assert.Greater(t, cfg.DefaultMaxElementCapacity, 0)
}

func TestValidateRejectsNonPositiveSizes(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.DefaultMaxPoolSize = 0
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.DefaultMaxElementCapacity = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadSampleRate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Observability.TracingSampleRate = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadOverride(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Overrides["big-buffer"] = SizeOverride{MaxPoolSize: 0, MaxElementCapacity: 10}
	assert.Error(t, cfg.Validate())
}

func TestLimitsForFallsBackToDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	maxPool, maxCap := cfg.LimitsFor("unregistered")
	assert.Equal(t, cfg.DefaultMaxPoolSize, maxPool)
	assert.Equal(t, cfg.DefaultMaxElementCapacity, maxCap)
}

func TestLimitsForUsesOverride(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Overrides["big-buffer"] = SizeOverride{MaxPoolSize: 4, MaxElementCapacity: 1 << 24}
	maxPool, maxCap := cfg.LimitsFor("big-buffer")
	assert.Equal(t, 4, maxPool)
	assert.Equal(t, 1<<24, maxCap)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().DefaultMaxPoolSize, cfg.DefaultMaxPoolSize)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.DefaultMaxPoolSize = 128
	cfg.Overrides["big-buffer"] = SizeOverride{MaxPoolSize: 4, MaxElementCapacity: 1 << 24}

	path := filepath.Join(t.TempDir(), "poolshark.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, loaded.DefaultMaxPoolSize)
	assert.Equal(t, 4, loaded.Overrides["big-buffer"].MaxPoolSize)
}
