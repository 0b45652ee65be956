// Package blobstore provides storage for label transform artifacts.
//
// Artifacts are small and always read whole, so the interface is a plain
// key/value blob API. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process, for tests and short-lived pipelines
//   - LocalStore: local filesystem with atomic, fsynced writes
//   - s3.Store: Amazon S3 (optionally with s3.DDBCommitStore for CURRENT pointers)
//   - minio.Store: MinIO and other S3-compatible storage
//   - mongo.Store: MongoDB collection
//
// # Custom Implementations
//
//	type Store interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error  // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error satisfying errors.Is(err, ErrNotFound) for missing blobs.
package blobstore
