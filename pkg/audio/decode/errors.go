package decode

import "fmt"

// Common error codes
const (
	ErrCodeEmptyInput    = "EMPTY_INPUT"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeTruncated     = "TRUNCATED"
	ErrCodeDecoding      = "DECODING_FAILED"
	ErrCodeUnsupported   = "UNSUPPORTED_FORMAT"
)

// Error represents a decode failure. When every strategy in the chain has
// failed it is the single aggregated error returned to the caller; raw codec
// errors never escape the chain directly.
type Error struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Strategy string `json:"strategy,omitempty"`
	Cause    error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new decode error.
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func newStrategyError(strategy, message string, cause error) *Error {
	return &Error{
		Code:     ErrCodeDecoding,
		Message:  message,
		Strategy: strategy,
		Cause:    cause,
	}
}

func errTruncated(strategy, what string) *Error {
	return &Error{
		Code:     ErrCodeTruncated,
		Message:  fmt.Sprintf("stream truncated while reading %s", what),
		Strategy: strategy,
	}
}
