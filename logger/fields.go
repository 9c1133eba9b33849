package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across mutigen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldRunID = "run_id"
	FieldClass = "class"
	FieldUnit  = "unit"
	FieldIndex = "index"

	// Components
	FieldComponent = "component"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"

	// Counts and sizes
	FieldCount   = "count"
	FieldSize    = "size"
	FieldWorkers = "workers"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"

	// Generation
	FieldMethod = "method"
	FieldShape  = "shape"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Driver struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func New() *Driver {
//	    return &Driver{logger: logger.ComponentLogger("driver")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	classLogger := logger.ChildLogger(base, logger.FieldClass, model.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
