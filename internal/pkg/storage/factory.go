package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Driver names accepted by NewFromDriver.
const (
	DriverS3    = "s3"
	DriverGCS   = "gcs"
	DriverMinIO = "minio"
)

// ErrUnknownDriver indicates an unsupported storage driver name.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions carries the per-driver configuration. Only the selected
// driver's options are read.
type FactoryOptions struct {
	S3    S3Options
	GCS   GCSOptions
	MinIO MinIOOptions
}

// NewFromDriver builds the Storage backend named by driver.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
