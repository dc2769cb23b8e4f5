package storage

import (
	"context"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCSAdapter implements Storage using Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
	signer *gcsSigner
}

// GCSOptions configures GCS client initialization.
type GCSOptions struct {
	// Client provides an existing GCS client.
	Client *gcs.Client
	// CredentialsJSON is a service account key. When set it is used for both
	// the client and signed URL generation.
	CredentialsJSON []byte
}

type gcsSigner struct {
	googleAccessID string
	privateKey     []byte
}

// NewGCS constructs a GCS adapter with optional signing support.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	client := opts.Client
	var signer *gcsSigner

	if len(opts.CredentialsJSON) > 0 {
		jwtCfg, err := google.JWTConfigFromJSON(opts.CredentialsJSON, gcs.ScopeReadWrite)
		if err != nil {
			return nil, err
		}
		signer = &gcsSigner{
			googleAccessID: jwtCfg.Email,
			privateKey:     jwtCfg.PrivateKey,
		}

		if client == nil {
			client, err = gcs.NewClient(ctx, option.WithCredentialsJSON(opts.CredentialsJSON))
			if err != nil {
				return nil, err
			}
		}
	}

	if client == nil {
		created, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		client = created
	}

	return &GCSAdapter{client: client, signer: signer}, nil
}

// PutObject stores data in GCS and returns metadata.
func (g *GCSAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	writer := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if opts.ContentType != "" {
		writer.ContentType = opts.ContentType
	}
	if len(opts.Metadata) > 0 {
		writer.Metadata = opts.Metadata
	}

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return ObjectInfo{}, err
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	info := ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        opts.Size,
		ContentType: opts.ContentType,
	}
	if attrs := writer.Attrs(); attrs != nil {
		info.Size = attrs.Size
		info.ETag = attrs.Etag
	}
	return info, nil
}

// PresignGet returns a signed URL for downloading from GCS.
func (g *GCSAdapter) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if g.signer == nil {
		return "", ErrMissingSigner
	}
	return gcs.SignedURL(bucket, key, &gcs.SignedURLOptions{
		Method:         "GET",
		Expires:        time.Now().Add(expiry),
		GoogleAccessID: g.signer.googleAccessID,
		PrivateKey:     g.signer.privateKey,
	})
}

// Close closes the GCS client.
func (g *GCSAdapter) Close() error {
	return g.client.Close()
}
