package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Record errors
	ErrRecordNotFound  ErrorCode = "RECORD_NOT_FOUND"
	ErrPlayerRequired  ErrorCode = "PLAYER_REQUIRED"
	ErrPitcherRequired ErrorCode = "PITCHER_REQUIRED"
	ErrResultRequired  ErrorCode = "RESULT_REQUIRED"
	ErrNothingToUndo   ErrorCode = "NOTHING_TO_UNDO"

	// Roster errors
	ErrPlayerExists   ErrorCode = "PLAYER_EXISTS"
	ErrPlayerNotFound ErrorCode = "PLAYER_NOT_FOUND"

	// Input errors
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrImportFailed    ErrorCode = "IMPORT_FAILED"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrNetworkError  ErrorCode = "NETWORK_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError is an error carrying a code the surfaces can map to a reply
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in an AppError
func WrapError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError checks if an error chain holds an AppError with a specific code
func IsAppError(err error, code ErrorCode) bool {
	var appErr *AppError
	if !As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// As finds the first AppError in err's chain
func As(err error, target **AppError) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.As(err, target)
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrInternalError when there is none
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalError
}
