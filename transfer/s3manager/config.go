package s3manager

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jmgilman/objfs/errors"
)

const defaultRegion = "us-east-1"

// Config holds connection settings for an S3-compatible endpoint.
type Config struct {
	// Endpoint is the S3-compatible endpoint, with or without a scheme.
	// Empty means the AWS default endpoint for Region.
	Endpoint string

	// Region defaults to "us-east-1".
	Region string

	// AccessKey and SecretKey are static credentials. When both are empty the
	// default AWS credential chain is used.
	AccessKey string
	SecretKey string

	// UseSSL selects https when Endpoint has no scheme.
	UseSSL bool

	// UsePathStyle forces path-style addressing, which MinIO requires.
	UsePathStyle bool
}

func (c *Config) validate() error {
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return errors.New(errors.CodeInvalidConfig, "access key and secret key must be set together")
	}
	return nil
}

func (c *Config) baseEndpoint() string {
	if c.Endpoint == "" || strings.Contains(c.Endpoint, "://") {
		return c.Endpoint
	}
	if c.UseSSL {
		return "https://" + c.Endpoint
	}
	return "http://" + c.Endpoint
}

// NewClient builds an S3 client from cfg.
func NewClient(ctx context.Context, cfg Config) (*s3.Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to load AWS config")
	}

	endpoint := cfg.baseEndpoint()
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
