package transcription

// AudioSegment is a time-aligned portion of a transcript. Segments are
// immutable once produced; start and end times are whole seconds.
type AudioSegment struct {
	// ID is the segment's source-order index.
	ID int `json:"id"`
	// StartTime is the segment start in seconds from the beginning of the audio.
	StartTime int `json:"start_time"`
	// EndTime is the segment end in seconds.
	EndTime int `json:"end_time"`
	// Text is the transcribed text for this segment.
	Text string `json:"transcript"`
}

// Result is a finished transcription: the full transcript text plus the
// time-ordered segment sequence.
type Result struct {
	// Transcript is the full transcription as one continuous block of text.
	Transcript string `json:"transcript"`
	// AudioSegments is ordered by StartTime ascending.
	AudioSegments []AudioSegment `json:"audio_segments"`
}

// JobStatus is the lifecycle state of an asynchronous transcription job.
type JobStatus string

const (
	StatusQueued     JobStatus = "QUEUED"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
)

// Done reports whether the job has reached a terminal state.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// JobRequest describes an audio asset to transcribe.
type JobRequest struct {
	// Bucket is the storage bucket holding the media object.
	Bucket string `json:"bucket"`
	// ObjectKey locates the media object, expected as "jobID/filename.ext".
	ObjectKey string `json:"object_key"`
	// Language is the expected language of the audio (e.g. "en-US").
	Language string `json:"language,omitempty"`
	// MediaFormat is the container format (e.g. "mp4").
	MediaFormat string `json:"media_format,omitempty"`
}
