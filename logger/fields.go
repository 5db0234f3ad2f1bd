package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"

	FieldChapterID   = "chapter_id"
	FieldTopic       = "topic"
	FieldSegmentID   = "segment_id"
	FieldBatch       = "batch"
	FieldModel       = "model"
	FieldAttempt     = "attempt"
	FieldTag         = "tag"
	FieldQuizLevel   = "quiz_level"
	FieldDropReason  = "drop_reason"
	FieldArtifact    = "artifact"
	FieldStoragePath = "storage_path"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("batch classified", logger.Fields("chapter_id", 2, "batch", 4))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}
