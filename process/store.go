package process

import (
	"context"
	"path"

	"github.com/kbukum/chapterkit/logger"
	"github.com/kbukum/chapterkit/observability"
	"github.com/kbukum/chapterkit/storage"
	"github.com/kbukum/chapterkit/transcription"
)

// Artifact object names written under the run prefix.
const (
	artifactOverview = "overview.json"
	artifactChapters = "chapters.json"
)

// Store persists run outputs as JSON artifacts.
type Store struct {
	client *storage.ByteClient
	log    *logger.Logger
}

func NewStore(s storage.Storage, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		client: storage.NewByteClient(s),
		log:    log.WithComponent("process"),
	}
}

// Save writes the overview and chapter artifacts under the run's prefix,
// e.g. <run_id>/overview.json. The overview is written first so a partial
// failure never leaves chapters without their overview.
func (s *Store) Save(ctx context.Context, out *Output) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanStore)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRunID, out.RunID)

	overviewPath := path.Join(out.RunID, artifactOverview)
	if err := s.client.UploadJSON(ctx, overviewPath, out.Overview); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	s.log.Info("artifact stored", logger.Fields(
		logger.FieldRunID, out.RunID,
		logger.FieldArtifact, artifactOverview,
		logger.FieldStoragePath, overviewPath))

	chaptersPath := path.Join(out.RunID, artifactChapters)
	if err := s.client.UploadJSON(ctx, chaptersPath, out.Chapters); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	s.log.Info("artifact stored", logger.Fields(
		logger.FieldRunID, out.RunID,
		logger.FieldArtifact, artifactChapters,
		logger.FieldStoragePath, chaptersPath))
	return nil
}

// Load reads a previously stored run back from storage.
func (s *Store) Load(ctx context.Context, runID string) (*Output, error) {
	out := &Output{RunID: runID}
	if err := s.client.DownloadJSON(ctx, path.Join(runID, artifactOverview), &out.Overview); err != nil {
		return nil, err
	}
	if err := s.client.DownloadJSON(ctx, path.Join(runID, artifactChapters), &out.Chapters); err != nil {
		return nil, err
	}
	return out, nil
}

// RunAndStore executes the pipeline and persists its output.
func (r *Runner) RunAndStore(ctx context.Context, result *transcription.Result, store *Store) (*Output, error) {
	out, err := r.Run(ctx, result)
	if err != nil {
		return nil, err
	}
	if err := store.Save(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}
