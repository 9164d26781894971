package runner

import (
	"context"
	"os"

	"github.com/hupe1980/colm/artifact"
	"github.com/hupe1980/colm/artifact/s3"
	"github.com/hupe1980/colm/config"
	"github.com/hupe1980/colm/logging"
)

// NewPublisher builds the S3 artifact store described by cfg. It returns nil
// when publishing is disabled.
func NewPublisher(ctx context.Context, cfg config.Publish) (artifact.Store, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	s3cfg := s3.Config{
		Bucket:   cfg.Bucket,
		Prefix:   cfg.Prefix,
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	}
	if cfg.AccessKeyEnv != "" {
		s3cfg.AccessKey = os.Getenv(cfg.AccessKeyEnv)
	}
	if cfg.SecretKeyEnv != "" {
		s3cfg.SecretKey = os.Getenv(cfg.SecretKeyEnv)
	}

	return s3.New(ctx, s3cfg)
}

// publish mirrors dir when a publisher is configured. Failures are logged;
// the local files stay authoritative.
func publish(ctx context.Context, pub artifact.Store, dir, prefix string, logger logging.Logger) {
	if pub == nil {
		return
	}
	keys, err := artifact.PublishDir(ctx, pub, dir, prefix)
	if err != nil {
		logger.Error("Publishing results failed", "dir", dir, "published", len(keys), "error", err)
		return
	}
	logger.Info("Published results", "dir", dir, "objects", len(keys))
}
