// Package errors provides unified error handling for the chaptering pipeline.
// It implements structured error types with machine-readable codes and
// retryable detection, so callers can distinguish a throttled oracle call
// (retry with backoff) from a permanently failed one (abort the stage).
package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf returns the ErrorCode of err if it is (or wraps) an AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// IsThrottled reports whether err represents an oracle throttling condition.
func IsThrottled(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeOracleThrottled
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

// --- Common Error Constructors ---

// Throttled creates a new AppError for an oracle call rejected by rate limiting.
func Throttled(model string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeOracleThrottled, Message: "The model is throttling requests. Retry with backoff.",
		Retryable: true, Cause: cause,
		Details: map[string]any{"model": model},
	}
}

// OracleUnavailable creates a new AppError for an oracle that failed after the retry ceiling.
func OracleUnavailable(model string, attempts int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeOracleUnavailable, Message: fmt.Sprintf("The model did not answer after %d attempts.", attempts),
		Retryable: false, Cause: cause,
		Details: map[string]any{"model": model, "attempts": attempts},
	}
}

// MalformedOutput creates a new AppError for oracle output missing a required tag.
func MalformedOutput(tag string) *AppError {
	return &AppError{
		Code: ErrCodeMalformedOutput, Message: fmt.Sprintf("Model output is missing required <%s> content.", tag),
		Retryable: false,
		Details:   map[string]any{"tag": tag},
	}
}

// EmptySegmentSet creates a new AppError for a chapter that accumulated no segments.
func EmptySegmentSet(chapterID int) *AppError {
	return &AppError{
		Code: ErrCodeEmptySegmentSet, Message: fmt.Sprintf("Chapter %d received no audio segments.", chapterID),
		Retryable: false,
		Details:   map[string]any{"chapter_id": chapterID},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// StorageError creates a new AppError for an object storage failure.
func StorageError(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: fmt.Sprintf("Object storage %s failed.", op),
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": op},
	}
}

// TranscriptionError creates a new AppError for a transcription backend failure.
func TranscriptionError(job string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscription, Message: "The transcription backend encountered an error.",
		Retryable: true, Cause: cause,
		Details: map[string]any{"job": job},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}
