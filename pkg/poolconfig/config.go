// Package poolconfig provides the unified configuration system for poolshark.
// It defines a single PoolConfig structure controlling pool sizing policy,
// loaded the same way the rest of this codebase loads configuration: a
// struct of sensible defaults, overridable from a YAML file or environment
// variables via viper.
//
// Example usage:
//
//	cfg := poolconfig.NewDefaultConfig()
//	cfg.DefaultMaxPoolSize = 512
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package poolconfig

import (
	"fmt"
	"time"
)

// PoolConfig is the configuration structure for pool sizing policy. The
// registries in this module do not read it themselves; a caller applies its
// values when constructing pools or setting slot limits. Labeled overrides
// let a caller give one shape (e.g. a very large buffer type) different
// limits than the process-wide defaults.
type PoolConfig struct {
	// DefaultMaxPoolSize caps how many idle values a pool keeps before new
	// releases are silently dropped.
	DefaultMaxPoolSize int `yaml:"default_max_pool_size" json:"default_max_pool_size" mapstructure:"default_max_pool_size"`

	// DefaultMaxElementCapacity caps Capacity() for values admitted back into
	// a pool; larger values are really dropped instead of recycled.
	DefaultMaxElementCapacity int `yaml:"default_max_element_capacity" json:"default_max_element_capacity" mapstructure:"default_max_element_capacity"`

	// PruneInterval is how often a caller running a background pruner should
	// invoke Prune() on registered global pools. The library itself never
	// schedules this; it is advisory configuration for callers.
	PruneInterval time.Duration `yaml:"prune_interval" json:"prune_interval" mapstructure:"prune_interval"`

	// Observability controls which ambient instrumentation is active.
	Observability ObservabilityConfig `yaml:"observability" json:"observability" mapstructure:"observability"`

	// Overrides maps a human label (set by the caller at registration time,
	// not derived from the Discriminant itself) to per-shape limits.
	Overrides map[string]SizeOverride `yaml:"overrides" json:"overrides" mapstructure:"overrides"`
}

// SizeOverride holds per-shape pool limits, overriding PoolConfig's defaults.
type SizeOverride struct {
	MaxPoolSize        int `yaml:"max_pool_size" json:"max_pool_size" mapstructure:"max_pool_size"`
	MaxElementCapacity int `yaml:"max_element_capacity" json:"max_element_capacity" mapstructure:"max_element_capacity"`
}

// ObservabilityConfig controls metrics, tracing, and logging verbosity.
type ObservabilityConfig struct {
	EnableMetrics     bool    `yaml:"enable_metrics" json:"enable_metrics" mapstructure:"enable_metrics"`
	EnableTracing     bool    `yaml:"enable_tracing" json:"enable_tracing" mapstructure:"enable_tracing"`
	EnableRSSSampling bool    `yaml:"enable_rss_sampling" json:"enable_rss_sampling" mapstructure:"enable_rss_sampling"`
	LogLevel          string  `yaml:"log_level" json:"log_level" mapstructure:"log_level"`
	TracingSampleRate float64 `yaml:"tracing_sample_rate" json:"tracing_sample_rate" mapstructure:"tracing_sample_rate"`
}

// NewDefaultConfig returns a PoolConfig with sensible production defaults.
func NewDefaultConfig() *PoolConfig {
	return &PoolConfig{
		DefaultMaxPoolSize:        256,
		DefaultMaxElementCapacity: 1 << 20, // 1 MiB for byte-like containers
		PruneInterval:             time.Minute,
		Observability: ObservabilityConfig{
			EnableMetrics:     true,
			EnableTracing:     false,
			EnableRSSSampling: false,
			LogLevel:          "info",
			TracingSampleRate: 0.1,
		},
		Overrides: make(map[string]SizeOverride),
	}
}

// Validate checks the configuration for correctness, catching configuration
// errors at startup rather than at first pool use.
func (c *PoolConfig) Validate() error {
	if c.DefaultMaxPoolSize <= 0 {
		return fmt.Errorf("default_max_pool_size must be positive")
	}
	if c.DefaultMaxElementCapacity <= 0 {
		return fmt.Errorf("default_max_element_capacity must be positive")
	}
	if c.Observability.TracingSampleRate < 0 || c.Observability.TracingSampleRate > 1 {
		return fmt.Errorf("tracing_sample_rate must be between 0 and 1")
	}
	for label, ov := range c.Overrides {
		if ov.MaxPoolSize <= 0 {
			return fmt.Errorf("override %q: max_pool_size must be positive", label)
		}
		if ov.MaxElementCapacity <= 0 {
			return fmt.Errorf("override %q: max_element_capacity must be positive", label)
		}
	}
	return nil
}

// LimitsFor resolves the effective (maxPoolSize, maxElementCapacity) pair for
// a given override label, falling back to the process-wide defaults when no
// override is registered for that label.
func (c *PoolConfig) LimitsFor(label string) (maxPoolSize, maxElementCapacity int) {
	if ov, ok := c.Overrides[label]; ok {
		return ov.MaxPoolSize, ov.MaxElementCapacity
	}
	return c.DefaultMaxPoolSize, c.DefaultMaxElementCapacity
}
