package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/security"
)

// FileSink stores documents below a local directory.
type FileSink struct {
	dir    string
	logger hclog.Logger
}

// NewFileSink creates a FileSink rooted at dir.
func NewFileSink(dir string, logger hclog.Logger) *FileSink {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileSink{dir: dir, logger: logger}
}

// Path returns the file path key is stored at.
func (f *FileSink) Path(key string) string {
	return filepath.Join(f.dir, filepath.FromSlash(key))
}

// PutDocument implements Sink. The file is written to a temporary name and
// renamed into place.
func (f *FileSink) PutDocument(_ context.Context, key string, doc []byte) error {
	if err := security.ValidateFilePath(filepath.FromSlash(key), f.dir); err != nil {
		return fmt.Errorf("invalid document key %q: %w", key, err)
	}

	dest := f.Path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil { // #nosec G301 - output directory is user facing
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".palettes-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(doc)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("failed to write document: %w", writeErr)
		}
		return fmt.Errorf("failed to close document: %w", closeErr)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 - document is meant to be shared
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set document permissions: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move document into place: %w", err)
	}

	f.logger.Debug("wrote document", "path", dest, "bytes", len(doc))
	return nil
}
