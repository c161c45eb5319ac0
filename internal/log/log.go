package log

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

var defaultLogger atomic.Pointer[zap.Logger]

func init() {
	logger, err := New(LogInfo)
	if err != nil {
		logger = zap.NewNop()
	}
	defaultLogger.Store(logger)
}

// New builds a production zap logger at the given level.
// An empty level means info.
func New(level LogLevel) (*zap.Logger, error) {
	if level == "" {
		level = LogInfo
	}
	atomicLevel, err := zap.ParseAtomicLevel(string(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	return cfg.Build()
}

// NewTest builds a human readable debug logger writing to stdout.
func NewTest() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}

// Default returns the module wide logger.
func Default() *zap.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the module wide logger and returns the previous one.
// A nil logger silences logging.
func SetDefault(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return defaultLogger.Swap(logger)
}

// Or returns logger, or the module wide logger when logger is nil.
func Or(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return Default()
}
