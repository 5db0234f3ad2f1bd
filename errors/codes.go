package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Oracle errors
const (
	// ErrCodeOracleThrottled indicates the oracle rejected a call due to rate limiting.
	ErrCodeOracleThrottled ErrorCode = "ORACLE_THROTTLED"
	// ErrCodeOracleUnavailable indicates the oracle failed after the retry ceiling.
	ErrCodeOracleUnavailable ErrorCode = "ORACLE_UNAVAILABLE"
	// ErrCodeMalformedOutput indicates a required tag was missing or empty in oracle output.
	ErrCodeMalformedOutput ErrorCode = "MALFORMED_OUTPUT"
)

// Pipeline errors
const (
	// ErrCodeEmptySegmentSet indicates a chapter accumulated no audio segments.
	ErrCodeEmptySegmentSet ErrorCode = "EMPTY_SEGMENT_SET"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Infrastructure errors
const (
	// ErrCodeStorage indicates an object storage failure.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeTranscription indicates a transcription backend failure.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeOracleThrottled:   true,
	ErrCodeStorage:           true,
	ErrCodeTranscription:     true,
	ErrCodeOracleUnavailable: false,
	ErrCodeMalformedOutput:   false,
	ErrCodeEmptySegmentSet:   false,
	ErrCodeInvalidInput:      false,
	ErrCodeInternal:          false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
