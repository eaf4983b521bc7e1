package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize is called, so library packages can log
	// unconditionally.
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. Verbosity is the count of -v flags.
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeWriter(os.Stderr, jsonOutput, verbosity)
}

// InitializeWriter is Initialize with an explicit destination. Generated code
// may go to stdout (--dry-run), so logs default to stderr.
func InitializeWriter(w io.Writer, jsonOutput bool, verbosity int) error {
	JSONOutput = jsonOutput
	loadThemeFromEnv()

	level := VerbosityToLevel(verbosity)

	var zapLogger *zap.Logger
	if jsonOutput {
		// JSON structured output for machine consumption
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapLogger = zap.New(zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(w),
			level,
		))
	} else {
		// Human-readable console output with minimal formatting
		zapLogger = zap.New(zapcore.NewCore(
			newMinimalEncoder(),
			zapcore.AddSync(w),
			level,
		))
	}

	Logger = zapLogger.Sugar()
	return nil
}

// loadThemeFromEnv picks up NOTIFYGEN_LOG_THEME; config-driven themes are
// applied later through SetTheme.
func loadThemeFromEnv() {
	if theme := os.Getenv("NOTIFYGEN_LOG_THEME"); theme != "" {
		SetTheme(theme)
	}
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
