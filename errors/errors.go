// Package errors provides error handling for notifygen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints on load and marker failures
//
// Usage:
//
//	// Wrap with context
//	if err := loadPackages(); err != nil {
//	    return errors.Wrap(err, "failed to load packages")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run notifygen generate")
//
//	// Check errors
//	if errors.Is(err, errors.ErrInvalidMarker) {
//	    // report the directive
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors shared by the generator packages.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrInvalidMarker indicates a +notify directive with malformed arguments
	ErrInvalidMarker = New("invalid marker")

	// ErrLoad indicates the host packages could not be loaded or type-checked
	ErrLoad = New("load failed")

	// ErrOutOfDate indicates generated files differ from what would be generated
	ErrOutOfDate = New("generated code is out of date")

	// ErrInvalidSnapshot indicates a snapshot document that cannot be decoded
	ErrInvalidSnapshot = New("invalid snapshot")
)

// IsInvalidMarker checks if an error is or wraps ErrInvalidMarker
func IsInvalidMarker(err error) bool {
	return err != nil && Is(err, ErrInvalidMarker)
}

// IsOutOfDate checks if an error is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewInvalidMarkerError creates an invalid-marker error with a formatted message
func NewInvalidMarkerError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidMarker, Newf(format, args...).Error())
}
