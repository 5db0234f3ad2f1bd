package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	e := New(ErrCodeInvalidInput, "bad transcript")
	if got := e.Error(); got != "INVALID_INPUT: bad transcript" {
		t.Errorf("unexpected error string: %q", got)
	}

	withCause := New(ErrCodeStorage, "upload failed").WithCause(errors.New("boom"))
	if got := withCause.Error(); got != "STORAGE_ERROR: upload failed (cause: boom)" {
		t.Errorf("unexpected error string: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	e := StorageError("download", cause)
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestIsThrottled(t *testing.T) {
	if !IsThrottled(Throttled("claude", nil)) {
		t.Error("Throttled error not detected")
	}
	if IsThrottled(OracleUnavailable("claude", 10, nil)) {
		t.Error("OracleUnavailable misdetected as throttled")
	}
	// Detection must survive wrapping.
	wrapped := fmt.Errorf("invoke: %w", Throttled("claude", nil))
	if !IsThrottled(wrapped) {
		t.Error("wrapped throttled error not detected")
	}
	if IsThrottled(errors.New("plain")) {
		t.Error("plain error misdetected as throttled")
	}
}

func TestRetryableByCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want bool
	}{
		{Throttled("m", nil), true},
		{StorageError("upload", nil), true},
		{OracleUnavailable("m", 10, nil), false},
		{MalformedOutput("summary"), false},
		{EmptySegmentSet(3), false},
	}
	for _, tc := range tests {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tc.err.Code, got, tc.want)
		}
	}
}

func TestDetails(t *testing.T) {
	e := EmptySegmentSet(2)
	if e.Details["chapter_id"] != 2 {
		t.Errorf("expected chapter_id detail, got %v", e.Details)
	}
	e.WithDetail("stage", "timestamps")
	if e.Details["stage"] != "timestamps" {
		t.Errorf("expected stage detail, got %v", e.Details)
	}
}
