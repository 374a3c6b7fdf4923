package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/hashicorp/go-hclog"
)

// PutObjectAPI is the subset of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ PutObjectAPI = (*s3.Client)(nil)

// S3Options configures an S3Sink.
type S3Options struct {
	Bucket string
	// Prefix is prepended to every key.
	Prefix string
	// RunID is stored as object metadata.
	RunID  string
	Logger hclog.Logger
}

// S3Sink stores documents as S3 objects.
type S3Sink struct {
	api    PutObjectAPI
	bucket string
	prefix string
	runID  string
	logger hclog.Logger
}

// NewS3Sink creates an S3Sink.
func NewS3Sink(api PutObjectAPI, opts S3Options) (*S3Sink, error) {
	if opts.Bucket == "" {
		return nil, errors.New("bucket name cannot be empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &S3Sink{
		api:    api,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		runID:  opts.RunID,
		logger: logger,
	}, nil
}

// Key returns the full object key for key.
func (s *S3Sink) Key(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

// PutDocument implements Sink.
func (s *S3Sink) PutDocument(ctx context.Context, key string, doc []byte) error {
	objectKey := s.Key(key)
	contentType := contentTypeFor(key)

	metadata := map[string]string{MetadataChecksum: Checksum(doc)}
	if s.runID != "" {
		metadata[MetadataRunID] = s.runID
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &objectKey,
		Body:        bytes.NewReader(doc),
		ContentType: &contentType,
		Metadata:    metadata,
	})
	if err != nil {
		return handleError(err, "PutObject", s.bucket, objectKey)
	}

	s.logger.Debug("uploaded object", "bucket", s.bucket, "key", objectKey, "bytes", len(doc), "checksum", metadata[MetadataChecksum])
	return nil
}

func handleError(err error, operation, bucket, key string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s s3://%s/%s failed: %s: %s",
			operation, bucket, key, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return fmt.Errorf("%s s3://%s/%s failed: %w", operation, bucket, key, err)
}
