// Package errors provides coded errors shared by the backtest engine, the strategy
// runtime and the screener.
//
// Codes are grouped by the layer that raises them:
//   - General errors (1-99)
//   - Validation errors (100-199): bad configuration, orders or parameters
//   - Data errors (200-299): bar tables, ticker tables, parquet files
//   - Indicator errors (300-399)
//   - Strategy errors (400-499): sizing failures, unsupported strategies
//   - Trading errors (500-599): denied orders, unknown orders or positions
//   - Backtest errors (600-699): engine setup and run failures
//   - Screening errors (700-799): stationarity/volatility statistics
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeUndersizedPosition, "risk budget %.2f cannot size one unit", risk)
//	if errors.HasCode(err, errors.ErrCodeUndersizedPosition) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error carrying an ErrorCode and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps cause with a code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps cause with a code and a formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the error must stop the current backtest run.
func (e *Error) IsFatal() bool {
	return e.Code.IsFatal()
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode of the first *Error in the chain.
// Returns ErrCodeUnknown when there is none.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned when a statistic needs more observations
// than the series provides.
type InsufficientDataError struct {
	Required int
	Actual   int
	Ticker   string
	Message  string
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, ticker, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Ticker:   ticker,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s (required %d, got %d)", e.Message, e.Required, e.Actual)
}

// IsInsufficientDataError checks the chain for an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
