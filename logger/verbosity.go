package logger

import "go.uber.org/zap/zapcore"

// Verbosity counts repeated -v flags.
const (
	VerbosityUser  = 0 // diagnostics and errors only
	VerbosityInfo  = 1 // -v: pass summaries, written files
	VerbosityDebug = 2 // -vv: cache hits, loader and watcher details
)

// VerbosityToLevel maps a -v count to the zap level that is enabled.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
