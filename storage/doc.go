// Package storage provides object storage abstractions with pluggable
// backends for pipeline inputs and artifacts.
//
// It defines interfaces for common storage operations (upload, download,
// delete, list) plus a []byte/JSON convenience client used for the
// structured artifact documents the pipeline emits.
//
// # Backends
//
//   - storage/s3: Amazon S3 and S3-compatible storage
//   - storage/local: local filesystem storage for development/testing
//
// # Configuration
//
// Backend selection and settings are provided via Config:
//
//	storage:
//	  provider: "s3"
//	  bucket: "my-bucket"
//	  region: "us-east-1"
package storage
