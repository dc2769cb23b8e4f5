// Package storage provides object storage behind a small interface, with
// S3, Google Cloud Storage, and MinIO drivers.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner indicates signed URL support is not configured.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage defines the object storage operations the application needs:
// uploading an object and handing out a time-limited download link.
type Storage interface {
	io.Closer

	// PutObject stores data and returns object metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// PresignGet returns a signed URL for downloading.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the expected content length.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
	// Metadata includes custom key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when provided.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
}
