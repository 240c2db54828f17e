package poolconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment variable prefix this loader binds under, e.g.
// POOLSHARK_DEFAULT_MAX_POOL_SIZE overrides DefaultMaxPoolSize.
const EnvPrefix = "POOLSHARK"

// Load reads a PoolConfig from an optional YAML file layered under
// environment variable overrides, the way the rest of this codebase loads
// its configuration. path may be empty, in which case only defaults and
// environment variables apply.
func Load(path string) (*PoolConfig, error) {
	cfg := NewDefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_max_pool_size", cfg.DefaultMaxPoolSize)
	v.SetDefault("default_max_element_capacity", cfg.DefaultMaxElementCapacity)
	v.SetDefault("prune_interval", cfg.PruneInterval)
	v.SetDefault("observability.enable_metrics", cfg.Observability.EnableMetrics)
	v.SetDefault("observability.enable_tracing", cfg.Observability.EnableTracing)
	v.SetDefault("observability.enable_rss_sampling", cfg.Observability.EnableRSSSampling)
	v.SetDefault("observability.log_level", cfg.Observability.LogLevel)
	v.SetDefault("observability.tracing_sample_rate", cfg.Observability.TracingSampleRate)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, for callers that generate a config file
// from a running PoolConfig (e.g. to snapshot the effective limits a
// process ended up with after env-var overrides were applied).
func Save(path string, cfg *PoolConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
