package errors

import (
	"fmt"
	"net/http"
)

// Canonical error codes shared by all generation pipelines. Each code carries
// a fixed retryable flag so callers can drive their own backoff from it.
const (
	CodeGridTooSmall     = "GRID_TOO_SMALL"
	CodeMissingData      = "MISSING_DATA"
	CodeAIServiceError   = "AI_SERVICE_ERROR"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeRateLimited      = "RATE_LIMITED"
	CodeCreditsExhausted = "CREDITS_EXHAUSTED"
	CodeTimeout          = "TIMEOUT"
	CodeConnectionError  = "CONNECTION_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

var retryable = map[string]bool{
	CodeGridTooSmall:     true,
	CodeMissingData:      true,
	CodeAIServiceError:   true,
	CodeInvalidRequest:   false,
	CodeRateLimited:      true,
	CodeCreditsExhausted: false,
	CodeTimeout:          true,
	CodeConnectionError:  true,
	CodeInternal:         false,
}

// Retryable reports the fixed retryable flag for a canonical code. Unknown
// codes are never retryable, so clients cannot loop on failure shapes we did
// not classify.
func Retryable(code string) bool {
	return retryable[code]
}

// Known reports whether code is part of the canonical taxonomy.
func Known(code string) bool {
	_, ok := retryable[code]
	return ok
}

type AppError struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) Retryable() bool {
	return Retryable(e.Code)
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion attaches a remediation hint surfaced to the frontend.
func (e *AppError) WithSuggestion(s string) *AppError {
	e.Suggestion = s
	return e
}

func Is(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// FromStatus classifies a non-2xx backend response into the canonical
// taxonomy. declaredCode is the code the backend reported in its error body,
// if any; values already in the taxonomy win over the status-class mapping.
func FromStatus(status int, declaredCode, message string) *AppError {
	if _, ok := retryable[declaredCode]; ok {
		return New(declaredCode, message)
	}

	switch {
	case status == http.StatusTooManyRequests:
		return New(CodeRateLimited, message)
	case status == http.StatusPaymentRequired:
		return New(CodeCreditsExhausted, message)
	case status >= 400 && status < 500:
		return New(CodeInvalidRequest, message)
	case status >= 500:
		return New(CodeAIServiceError, message)
	default:
		return New(CodeInternal, message)
	}
}
