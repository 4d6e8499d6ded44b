// Package errors provides structured error handling for vesta
// operations. It defines error codes and error types for the scan
// engine and its export sink, with context and unwrapping support.
package errors

import (
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"
	CodeTimeout       ErrorCode = "TIMEOUT"
	CodeCanceled      ErrorCode = "CANCELED"

	// Scan errors.
	CodeTargetInvalid ErrorCode = "TARGET_INVALID"
	CodeScanFailed    ErrorCode = "SCAN_FAILED"

	// Export errors.
	CodeFileWrite     ErrorCode = "FILE_WRITE"
	CodeFormatInvalid ErrorCode = "FORMAT_INVALID"
)

// ScanError represents an error that occurred while setting up or
// running a scan. Per-port probe failures are never represented as
// errors; the only scan-time failure class is configuration.
type ScanError struct {
	Code    ErrorCode
	Message string
	Target  string
	Cause   error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("[%s] %s (target: %s)", e.Code, e.Message, e.Target)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// NewScanError creates a new scan error with the specified code and message.
func NewScanError(code ErrorCode, message string) *ScanError {
	return &ScanError{Code: code, Message: message}
}

// NewScanErrorWithTarget creates a scan error for a specific target.
func NewScanErrorWithTarget(code ErrorCode, message, target string) *ScanError {
	return &ScanError{Code: code, Message: message, Target: target}
}

// WrapScanError wraps an existing error as a scan error.
func WrapScanError(code ErrorCode, message string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Cause: err}
}

// WrapScanErrorWithTarget wraps an error with target information.
func WrapScanErrorWithTarget(code ErrorCode, message, target string, err error) *ScanError {
	return &ScanError{Code: code, Message: message, Target: target, Cause: err}
}

// ExportError represents a failure while persisting a sealed session.
// Export failures never invalidate the session itself, which stays
// available for retry or an alternate format.
type ExportError struct {
	Code    ErrorCode
	Message string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s (path: %s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export error.
func NewExportError(code ErrorCode, message, path string) *ExportError {
	return &ExportError{Code: code, Message: message, Path: path}
}

// WrapExportError wraps an existing error as an export error.
func WrapExportError(code ErrorCode, message, path string, err error) *ExportError {
	return &ExportError{Code: code, Message: message, Path: path, Cause: err}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{Code: code, Message: message}
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{Code: code, Message: message, Field: field, Value: value}
}

// Utility functions for common error operations

// IsCode checks if an error has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error if it has one.
func GetCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ScanError:
		return e.Code
	case *ExportError:
		return e.Code
	case *ConfigError:
		return e.Code
	}
	return CodeUnknown
}

// IsConfigClass reports whether an error belongs to the
// configuration-error class, the only class raised before probes are
// dispatched.
func IsConfigClass(err error) bool {
	switch GetCode(err) {
	case CodeValidation, CodeConfiguration, CodeTargetInvalid:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrInvalidTarget creates an error for invalid scan targets.
func ErrInvalidTarget(target string) *ScanError {
	return NewScanErrorWithTarget(CodeTargetInvalid, "Invalid target specification", target)
}

// ErrEmptyPortSet creates an error for a scan request with no ports.
func ErrEmptyPortSet(target string) *ScanError {
	return NewScanErrorWithTarget(CodeValidation, "Port set is empty", target)
}

// ErrPortOutOfRange creates an error for a port outside [1,65535].
func ErrPortOutOfRange(port int) *ScanError {
	return NewScanError(CodeValidation,
		fmt.Sprintf("Port %d out of range (must be 1-65535)", port))
}

// ErrExportWrite creates an error for export file write failures.
func ErrExportWrite(path string, err error) *ExportError {
	return WrapExportError(CodeFileWrite, "Failed to write export file", path, err)
}
