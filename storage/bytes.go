package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/kbukum/chapterkit/errors"
)

// ByteClient wraps a streaming Storage with []byte and JSON-document
// operations. Pipeline artifacts are structured text documents, so callers
// mostly work with in-memory values rather than streams.
type ByteClient struct {
	storage Storage
}

// NewByteClient wraps a streaming Storage implementation.
func NewByteClient(s Storage) *ByteClient {
	return &ByteClient{storage: s}
}

// Upload stores data at the given path.
func (c *ByteClient) Upload(ctx context.Context, path string, data []byte) error {
	if err := c.storage.Upload(ctx, path, bytes.NewReader(data)); err != nil {
		return errors.StorageError("upload "+path, err)
	}
	return nil
}

// Download retrieves data from the given path.
func (c *ByteClient) Download(ctx context.Context, path string) ([]byte, error) {
	rc, err := c.storage.Download(ctx, path)
	if err != nil {
		return nil, errors.StorageError("download "+path, err)
	}
	defer rc.Close() //nolint:errcheck // Error on close is safe to ignore for read operations

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.StorageError("read "+path, err)
	}
	return data, nil
}

// UploadJSON marshals v and stores the document at the given path.
func (c *ByteClient) UploadJSON(ctx context.Context, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.StorageError("marshal "+path, err)
	}
	return c.Upload(ctx, path, data)
}

// DownloadJSON retrieves the document at the given path and unmarshals it
// into v.
func (c *ByteClient) DownloadJSON(ctx context.Context, path string, v any) error {
	data, err := c.Download(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.StorageError("unmarshal "+path, err)
	}
	return nil
}

// Exists checks whether an object exists at the given path.
func (c *ByteClient) Exists(ctx context.Context, path string) (bool, error) {
	return c.storage.Exists(ctx, path)
}

// Delete removes the object at the given path.
func (c *ByteClient) Delete(ctx context.Context, path string) error {
	return c.storage.Delete(ctx, path)
}
