// Package credentials loads the Google service-account key used by the
// spreadsheet adapter. The key can live in an S3 object, in AWS Secrets
// Manager or in a local file.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"

	"github.com/datafam/palettes/internal/security"
)

// MaxCredentialBytes bounds the size of a credential document.
const MaxCredentialBytes = 256 * 1024

// AWS error codes mapped onto sentinel errors.
const (
	codeNoSuchKey        = "NoSuchKey"
	codeNotFound         = "NotFound"
	codeResourceNotFound = "ResourceNotFoundException"
	codeAccessDenied     = "AccessDenied"
	codeAccessDeniedSM   = "AccessDeniedException"
)

var (
	// ErrNotFound is returned when the credential object or secret does not exist.
	ErrNotFound = errors.New("credentials not found")

	// ErrEmpty is returned when the credential exists but holds no data.
	ErrEmpty = errors.New("credentials are empty")

	// ErrAccessDenied is returned when the caller may not read the credential.
	ErrAccessDenied = errors.New("access denied to credentials")
)

// Loader returns the raw credential document.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

// ObjectAPI is the subset of the S3 client used by S3Loader.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// SecretAPI is the subset of the Secrets Manager client used by SecretLoader.
type SecretAPI interface {
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var (
	_ ObjectAPI = (*s3.Client)(nil)
	_ SecretAPI = (*secretsmanager.Client)(nil)
)

// S3Loader reads credentials from an S3 object.
type S3Loader struct {
	api    ObjectAPI
	bucket string
	key    string
}

// NewS3Loader creates an S3Loader for bucket/key.
func NewS3Loader(api ObjectAPI, bucket, key string) *S3Loader {
	return &S3Loader{api: api, bucket: bucket, key: key}
}

// Load implements Loader.
func (l *S3Loader) Load(ctx context.Context) ([]byte, error) {
	out, err := l.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &l.bucket,
		Key:    &l.key,
	})
	if err != nil {
		return nil, handleError(err, "GetObject")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(security.NewLimitedReader(out.Body, MaxCredentialBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", l.bucket, l.key, err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// SecretLoader reads credentials from AWS Secrets Manager.
type SecretLoader struct {
	api      SecretAPI
	secretID string
}

// NewSecretLoader creates a SecretLoader for the secret name or ARN.
func NewSecretLoader(api SecretAPI, secretID string) *SecretLoader {
	return &SecretLoader{api: api, secretID: secretID}
}

// Load implements Loader. String secrets are preferred over binary ones.
func (l *SecretLoader) Load(ctx context.Context) ([]byte, error) {
	out, err := l.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &l.secretID,
	})
	if err != nil {
		return nil, handleError(err, "GetSecretValue")
	}

	if out.SecretString != nil && *out.SecretString != "" {
		return []byte(*out.SecretString), nil
	}
	if len(out.SecretBinary) > 0 {
		return out.SecretBinary, nil
	}
	return nil, ErrEmpty
}

// FileLoader reads credentials from a local file.
type FileLoader struct {
	path string
}

// NewFileLoader creates a FileLoader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load implements Loader.
func (l *FileLoader) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(l.path) // #nosec G304 - path supplied by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// handleError maps AWS API errors onto the package sentinels and adds the
// operation name to anything else.
func handleError(err error, operation string) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s operation failed: %w", operation, err)
	}

	switch apiErr.ErrorCode() {
	case codeNoSuchKey, codeNotFound, codeResourceNotFound:
		return ErrNotFound
	case codeAccessDenied, codeAccessDeniedSM:
		return ErrAccessDenied
	default:
		return fmt.Errorf("%s operation failed: %s: %s", operation, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
}
