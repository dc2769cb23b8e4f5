package storage

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOAdapter implements Storage using MinIO.
type MinIOAdapter struct {
	client *minio.Client
}

// MinIOOptions configures MinIO client initialization.
type MinIOOptions struct {
	// Endpoint is the MinIO server address.
	Endpoint string
	// AccessKey is the access key ID.
	AccessKey string
	// SecretKey is the secret access key.
	SecretKey string
	// SessionToken is the optional session token.
	SessionToken string
	// Region is the MinIO region.
	Region string
	// UseSSL toggles TLS for MinIO connections.
	UseSSL bool
}

// NewMinIO constructs a MinIO adapter with the provided options.
func NewMinIO(opts MinIOOptions) (*MinIOAdapter, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, opts.SessionToken),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinIOAdapter{client: client}, nil
}

// NewMinIOWithClient wraps an existing MinIO client.
func NewMinIOWithClient(client *minio.Client) *MinIOAdapter {
	return &MinIOAdapter{client: client}
}

// PutObject stores data in MinIO and returns metadata.
func (m *MinIOAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, bucket, key, r, opts.Size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}

	return ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        info.Size,
		ETag:        info.ETag,
		ContentType: opts.ContentType,
	}, nil
}

// PresignGet returns a signed URL for downloading from MinIO.
func (m *MinIOAdapter) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

// Close releases MinIO adapter resources.
func (m *MinIOAdapter) Close() error {
	return nil
}
