package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidBarType       ErrorCode = 104
	ErrCodeInvalidInstrument    ErrorCode = 105

	// Data errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203
	ErrCodeDataWriteFailed       ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError  ErrorCode = 400
	ErrCodeUnsupportedStrategy  ErrorCode = 401
	ErrCodeUndersizedPosition   ErrorCode = 402
	ErrCodeStrategyRuntimeError ErrorCode = 403

	// Trading errors (500-599)
	ErrCodeOrderDenied      ErrorCode = 500
	ErrCodeOrderNotFound    ErrorCode = 501
	ErrCodePositionNotFound ErrorCode = 502
	ErrCodeAccountNotFound  ErrorCode = 503

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError   ErrorCode = 600
	ErrCodeBacktestNoVenue       ErrorCode = 601
	ErrCodeBacktestNoInstrument  ErrorCode = 602
	ErrCodeBacktestNoData        ErrorCode = 603
	ErrCodeBacktestNoStrategy    ErrorCode = 604
	ErrCodeInstrumentMismatch    ErrorCode = 605
	ErrCodeBacktestStateFailed   ErrorCode = 606
	ErrCodeBacktestResultsFailed ErrorCode = 607
	ErrCodeBacktestCancelled     ErrorCode = 608

	// Screening errors (700-799)
	ErrCodeScreeningFailed  ErrorCode = 700
	ErrCodeInsufficientData ErrorCode = 701
)

// IsFatal reports whether errors with this code must abort the affected run.
func (c ErrorCode) IsFatal() bool {
	switch c {
	case ErrCodeUndersizedPosition, ErrCodeInstrumentMismatch, ErrCodeStrategyConfigError:
		return true
	default:
		return false
	}
}
