package errors

import (
	stderrors "errors"
	"fmt"

	"senscalc/domain/core"
)

// AppError represents a structured application error: the error kind,
// a human-readable message and, where known, the offending input
// field. This is the (kind, message, field) triple the web layer maps
// to an HTTP status.
type AppError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Field:   appErr.Field,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// fieldCarrier is implemented by errors that know which input field
// they concern, such as validation errors.
type fieldCarrier interface {
	FieldName() string
}

// GetField returns the offending field if the error carries one.
func GetField(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Field != "" {
		return appErr.Field
	}
	var fc fieldCarrier
	if stderrors.As(err, &fc) {
		return fc.FieldName()
	}
	return ""
}

// Predefined error codes
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInvalidGeometry   = "INVALID_GEOMETRY"
	CodeInvalidEfficiency = "INVALID_EFFICIENCY"
	CodeUnsupportedMode   = "UNSUPPORTED_MODE"
	CodeDomainError       = "DOMAIN_ERROR"
	CodeNonConvergence    = "NON_CONVERGENCE"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// FromDomain converts a domain error into the coded triple, relaying
// the first failure verbatim as the cause. The engine never masks a
// lower-layer error; this only attaches the kind.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	switch {
	case core.IsValidationError(err):
		code = CodeValidationError
	case core.IsGeometryError(err):
		code = CodeInvalidGeometry
	case core.IsEfficiencyError(err):
		code = CodeInvalidEfficiency
	case core.IsUnsupportedModeError(err):
		code = CodeUnsupportedMode
	case core.IsDomainError(err):
		code = CodeDomainError
	case stderrors.Is(err, core.ErrNonConvergence):
		code = CodeNonConvergence
	case core.IsNotFoundError(err):
		code = CodeNotFound
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Field:   GetField(err),
		Cause:   err,
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}
