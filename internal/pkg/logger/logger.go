// Package logger exposes a process-wide zap SugaredLogger that writes JSON to
// stdout. When an OpenTelemetry LoggerProvider has been registered through the
// telemetry package, an otelzap bridge core is attached so every record is
// also exported through OTLP.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/walletping/walletping/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log      *zap.SugaredLogger
	initOnce sync.Once
)

// config holds the tunable options applied during Init.
type config struct {
	level string
}

// Option customizes the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum level ("debug", "info", "warn", "error", ...).
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = level
	}
}

// Init builds the global logger. The first call wins; later calls are no-ops.
// It returns an error only when the configured level cannot be parsed.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	initOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				level,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(lp)))
		}

		log = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes buffered entries. Call it once during shutdown.
func Sync() error {
	return log.Sync()
}

// Debug logs at debug level with alternating key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

// Info logs at info level with alternating key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

// Warn logs at warn level with alternating key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

// Error logs at error level with alternating key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

// Fatal logs at fatal level and terminates the process.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log.Fatalw(msg, keysAndValues...)
}
