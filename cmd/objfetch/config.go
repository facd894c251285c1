package main

import (
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/minio"
)

// Config is the objfetch environment configuration.
type Config struct {
	Endpoint  string `env:"OBJFETCH_ENDPOINT" env-default:"localhost:9000"`
	Bucket    string `env:"OBJFETCH_BUCKET" env-required:"true"`
	AccessKey string `env:"OBJFETCH_ACCESS_KEY"`
	SecretKey string `env:"OBJFETCH_SECRET_KEY"`
	UseSSL    bool   `env:"OBJFETCH_USE_SSL" env-default:"false"`
	Region    string `env:"OBJFETCH_REGION" env-default:"us-east-1"`
	Prefix    string `env:"OBJFETCH_PREFIX"`

	// PartSize and Concurrency tune the s3 backend.
	PartSize    int64 `env:"OBJFETCH_PART_SIZE" env-default:"0"`
	Concurrency int   `env:"OBJFETCH_PART_CONCURRENCY" env-default:"0"`

	LogLevel  string `env:"OBJFETCH_LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"OBJFETCH_LOG_FORMAT" env-default:"text"`
	LogFile   string `env:"OBJFETCH_LOG_FILE"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInvalidConfig, "failed to read configuration")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MinIO returns the filesystem configuration for backend.
func (c Config) MinIO(backend minio.Backend, logger *slog.Logger) minio.Config {
	return minio.Config{
		Endpoint:        c.Endpoint,
		Bucket:          c.Bucket,
		AccessKey:       c.AccessKey,
		SecretKey:       c.SecretKey,
		UseSSL:          c.UseSSL,
		Region:          c.Region,
		Prefix:          c.Prefix,
		TransferBackend: backend,
		PartSize:        c.PartSize,
		Concurrency:     c.Concurrency,
		Logger:          logger,
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Newf(errors.CodeInvalidConfig, "unknown log level %q", s)
	}
}
