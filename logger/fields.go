package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across notifygen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldPass      = "pass"

	// Generation subjects
	FieldType    = "type"
	FieldField   = "field"
	FieldPackage = "package"
	FieldCode    = "code"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount   = "count"
	FieldUnits   = "units"
	FieldHits    = "hits"
	FieldMisses  = "misses"
	FieldWorkers = "workers"

	// Files and paths
	FieldFile = "file"
	FieldLine = "line"
	FieldDir  = "dir"

	// Network
	FieldAddress = "address"
)

// Context keys for propagating logging context
type contextKey string

const (
	passKey      contextKey = "logger_pass"
	componentKey contextKey = "logger_component"
)

// WithPass adds a generation pass number to the context for logging
func WithPass(ctx context.Context, pass int) context.Context {
	return context.WithValue(ctx, passKey, pass)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if pass, ok := ctx.Value(passKey).(int); ok && pass > 0 {
		fields = append(fields, FieldPass, pass)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
