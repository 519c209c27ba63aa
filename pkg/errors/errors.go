package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrPermission     ErrorCode = "PERMISSION"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Wizard errors
	ErrValidation    ErrorCode = "VALIDATION"
	ErrCancelled     ErrorCode = "CANCELLED"
	ErrAborted       ErrorCode = "ABORTED"
	ErrProviderFatal ErrorCode = "PROVIDER_FATAL"
	ErrQuestionID    ErrorCode = "QUESTION_ID"

	// Installer errors
	ErrStepFailed      ErrorCode = "STEP_FAILED"
	ErrStepDependency  ErrorCode = "STEP_DEPENDENCY"
	ErrChrootInvariant ErrorCode = "CHROOT_INVARIANT"
	ErrChrootHandoff   ErrorCode = "CHROOT_HANDOFF"
	ErrExecFailed      ErrorCode = "EXEC_FAILED"
	ErrStateLoad       ErrorCode = "STATE_LOAD"
	ErrStateWrite      ErrorCode = "STATE_WRITE"

	// Precondition errors
	ErrNeedRoot    ErrorCode = "NEED_ROOT"
	ErrNoInternet  ErrorCode = "NO_INTERNET"
	ErrFileAccess  ErrorCode = "FILE_ACCESS"
	ErrFileMissing ErrorCode = "FILE_MISSING"
)

// InsError represents a structured error with code and details
type InsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *InsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *InsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *InsError) Is(target error) bool {
	var targetErr *InsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new InsError with the given code and message
func New(code ErrorCode, message string) *InsError {
	return &InsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new InsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *InsError {
	return &InsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an InsError
func Wrap(err error, code ErrorCode, message string) *InsError {
	if err == nil {
		return nil
	}
	return &InsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *InsError {
	if err == nil {
		return nil
	}
	return &InsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *InsError) WithDetail(key string, value interface{}) *InsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var insErr *InsError
	if errors.As(err, &insErr) {
		return insErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an InsError
func GetErrorCode(err error) ErrorCode {
	var insErr *InsError
	if errors.As(err, &insErr) {
		return insErr.Code
	}
	return ErrUnknown
}
