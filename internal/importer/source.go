package importer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Source opens import files by path.
type Source interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fileSource reads from the local file system.
type fileSource struct {
	logger zerolog.Logger
}

// NewFileSource creates a local file system source.
func NewFileSource(logger zerolog.Logger) Source {
	return &fileSource{
		logger: logger.With().Str("component", "import-file-source").Logger(),
	}
}

// Open opens path on the local file system.
func (s *fileSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	s.logger.Info().Str("file", path).Msg("opening import file")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file %s: %w", path, err)
	}
	return file, nil
}

// S3GetObjectAPI is the part of the S3 client used by the S3 source.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Source reads objects from a single bucket.
type s3Source struct {
	client S3GetObjectAPI
	bucket string
	logger zerolog.Logger
}

// NewS3Source creates an S3 source using the default AWS credential chain.
func NewS3Source(ctx context.Context, bucket, region string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "import-s3-source").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 import source initialised")

	return NewS3SourceWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3SourceWithClient creates an S3 source around an existing client.
func NewS3SourceWithClient(client S3GetObjectAPI, bucket string, logger zerolog.Logger) Source {
	return &s3Source{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Open fetches the object at key. The caller must close the returned body.
func (s *s3Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("fetching import file from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}
	return result.Body, nil
}

// fallbackSource tries S3 first and falls back to the local file system.
type fallbackSource struct {
	s3       Source
	local    Source
	s3Prefix string
	logger   zerolog.Logger
}

// NewFallbackSource creates a source that reads s3Prefix+path from S3 and,
// if that fails or s3 is nil, path from local disk.
func NewFallbackSource(s3Source, local Source, s3Prefix string, logger zerolog.Logger) Source {
	return &fallbackSource{
		s3:       s3Source,
		local:    local,
		s3Prefix: s3Prefix,
		logger:   logger.With().Str("component", "import-fallback-source").Logger(),
	}
}

// Open attempts S3 first, then the local path as given.
func (s *fallbackSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.s3 != nil {
		key := s.s3Prefix + path

		body, err := s.s3.Open(ctx, key)
		if err == nil {
			return body, nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", key).
			Msg("failed to load from S3, falling back to local file system")
	}

	return s.local.Open(ctx, path)
}
