// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the raw
// snapshot archive: after a successful fresh sync, the orchestrator stores the
// fetched partner payload as a JSON object so a batch can be replayed or
// audited later. The abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - MakeBucket: Creates the snapshot bucket if needed.
//   - PutObject: Uploads a snapshot (with size and options).
//   - GetObject: Retrieves a snapshot as a stream.
//   - ListObjects: Lists archived snapshots (supports prefix/recursive).
package storage
