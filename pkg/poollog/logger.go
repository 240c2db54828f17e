// Package poollog provides structured logging for poolshark's registries:
// pool construction, admission rejections, and prune cycles.
package poollog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/poolshark/pkg/poolerrors"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// contextKey is the type for context keys.
type contextKey string

const (
	// DiscriminantKey is the context key for a Discriminant's string form.
	DiscriminantKey contextKey = "discriminant"
	// PoolKey is the context key for a pool's caller-assigned label.
	PoolKey contextKey = "pool"
)

// Config represents logger configuration.
type Config struct {
	Level       string
	Development bool
	Encoding    string // json or console
	OutputPaths []string
}

// Init initializes the global logger. Safe to call more than once; only the
// first call takes effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = newLogger(cfg)
	})
	return err
}

func newLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if cfg.Development {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Development,
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if cfg.Development {
		logger = logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel))
	}

	return logger, nil
}

// Get returns the global logger, lazily initializing a default one if Init
// was never called.
func Get() *zap.Logger {
	if globalLogger == nil {
		cfg := Config{
			Level:       "info",
			Development: false,
			Encoding:    "json",
		}
		if err := Init(cfg); err != nil {
			logger, _ := zap.NewProduction()
			globalLogger = logger
		}
	}
	return globalLogger
}

// WithContext returns a logger enriched with any pooling context values
// present on ctx.
func WithContext(ctx context.Context) *zap.Logger {
	logger := Get()

	if discriminant, ok := ctx.Value(DiscriminantKey).(string); ok {
		logger = logger.With(zap.String("discriminant", discriminant))
	}

	if pool, ok := ctx.Value(PoolKey).(string); ok {
		logger = logger.With(zap.String("pool", pool))
	}

	return logger
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }

// Info logs an info message.
func Info(msg string, fields ...zap.Field) { Get().Info(msg, fields...) }

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) { Get().Warn(msg, fields...) }

// Error logs an error message.
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }

// Fatal logs a fatal message and exits.
func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
	os.Exit(1)
}

// With creates a child logger with additional fields.
func With(fields ...zap.Field) *zap.Logger { return Get().With(fields...) }

// Sync flushes any buffered log entries.
func Sync() error {
	if globalLogger != nil {
		return globalLogger.Sync()
	}
	return nil
}

// Named returns a child logger scoped to one pool or registry slot, the
// way pool/global and pool/local tag every event they log with the name
// (or Discriminant string) the caller or container registered under.
func Named(poolName string) *zap.Logger {
	return Get().With(zap.String("pool", poolName))
}

// PoolConstructed logs a pool/global.Pool or pool/local slot coming into
// existence, recording the admission limits it was given.
func PoolConstructed(poolName string, maxPoolSize, maxElementCapacity int) {
	Named(poolName).Debug("pool constructed",
		zap.Int("max_pool_size", maxPoolSize),
		zap.Int("max_element_capacity", maxElementCapacity),
	)
}

// AdmissionRejected logs a value failing the common admission policy on
// release — too large, or the pool already at capacity — the two silent
// rejection paths every Put/Insert funnels through.
func AdmissionRejected(poolName, reason string) {
	Named(poolName).Debug("admission rejected", zap.String("reason", reason))
}

// PruneCycle logs a Prune call that evicted at least one idle value.
func PruneCycle(poolName string, evicted, remaining int) {
	Named(poolName).Debug("prune cycle",
		zap.Int("evicted", evicted),
		zap.Int("remaining", remaining),
	)
}

// PackFailure is a pool.PackFailureHook implementation that logs a
// container's element/key/value layout failing to pack into a
// Discriminant. Callers that want this condition surfaced by default
// without writing their own hook assign it directly:
//
//	pool.PackFailureHook = poollog.PackFailure
func PackFailure(err *poolerrors.Error) {
	Get().Warn("discriminant pack failure", zap.Error(err))
}
