// Package minio provides a MinIO/S3-compatible implementation of the core.FS interface.
//
// Besides plain object access, MinioFS can materialize objects into local
// files through managed transfers (see OpenSession) and stores entry
// attributes as S3 user metadata.
package minio

import (
	"log/slog"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/objfs/errors"
)

// Backend selects the client library used for managed downloads.
type Backend string

const (
	// BackendMinIO downloads with minio-go FGetObject. Interrupted downloads
	// resume from the part file left next to the destination.
	BackendMinIO Backend = "minio"

	// BackendS3 downloads with the AWS SDK download manager using parallel
	// ranged requests.
	BackendS3 Backend = "s3"
)

// Config holds MinIO filesystem configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string

	// Bucket is the S3 bucket name
	Bucket string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// Region is passed to the S3 transfer backend. Default: "us-east-1"
	Region string

	// Prefix is an optional prefix for all object keys (for namespacing)
	Prefix string

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey are ignored for object access
	Client *minio.Client

	// MultipartThreshold is the file size threshold for multipart uploads
	// Default: 5MB (MinIO SDK default)
	MultipartThreshold int64

	// TransferBackend selects the managed download implementation.
	// Default: BackendMinIO
	TransferBackend Backend

	// PartSize and Concurrency tune BackendS3 downloads. Zero keeps the SDK
	// defaults.
	PartSize    int64
	Concurrency int

	// Logger receives debug traces of transfers. Default: discard
	Logger *slog.Logger
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + Bucket + AccessKey + SecretKey) must be provided.
// BackendS3 always needs the connection fields since it builds its own client.
func (c *Config) validate() error {
	if c.Bucket == "" {
		return errors.New(errors.CodeInvalidConfig, "bucket is required")
	}

	switch c.TransferBackend {
	case "", BackendMinIO, BackendS3:
	default:
		return errors.Newf(errors.CodeInvalidConfig, "unknown transfer backend %q", c.TransferBackend)
	}

	if c.Client != nil && c.TransferBackend != BackendS3 {
		return nil
	}

	if c.Endpoint == "" {
		return errors.New(errors.CodeInvalidConfig, "endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return errors.New(errors.CodeInvalidConfig, "access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return errors.New(errors.CodeInvalidConfig, "secret key is required when client is not provided")
	}

	return nil
}
