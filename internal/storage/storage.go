// Package storage publishes the preferences document to S3 or the local
// filesystem.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-hclog"

	"github.com/datafam/palettes/internal/compression"
)

// Metadata keys attached to stored documents.
const (
	MetadataRunID    = "run-id"
	MetadataChecksum = "xxhash64"
)

// DocumentContentType is the media type of the preferences document.
const DocumentContentType = "application/xml"

// Sink stores a document under a key.
type Sink interface {
	PutDocument(ctx context.Context, key string, doc []byte) error
}

// Checksum returns the hex encoded xxhash64 of doc.
func Checksum(doc []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(doc))
}

// contentTypeFor picks the content type from the key's extension.
func contentTypeFor(key string) string {
	if strings.HasSuffix(key, compression.Extension) {
		return compression.ContentType
	}
	return DocumentContentType
}

// ArchiveSink writes the document to its base sink and then stores an
// xz-compressed copy under archive/<date>/<run id>/<key>.xz.
type ArchiveSink struct {
	base   Sink
	prefix string
	runID  string
	now    func() time.Time
	logger hclog.Logger
}

// NewArchiveSink wraps base. An empty prefix uses "archive".
func NewArchiveSink(base Sink, prefix, runID string, logger hclog.Logger) *ArchiveSink {
	if prefix == "" {
		prefix = "archive"
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ArchiveSink{
		base:   base,
		prefix: prefix,
		runID:  runID,
		now:    time.Now,
		logger: logger,
	}
}

// ArchiveKey returns the key the archived copy of key is stored under.
func (a *ArchiveSink) ArchiveKey(key string) string {
	return path.Join(a.prefix, a.now().UTC().Format("2006-01-02"), a.runID, key) + compression.Extension
}

// PutDocument implements Sink.
func (a *ArchiveSink) PutDocument(ctx context.Context, key string, doc []byte) error {
	if err := a.base.PutDocument(ctx, key, doc); err != nil {
		return err
	}

	packed, err := compression.Compress(doc)
	if err != nil {
		return fmt.Errorf("failed to compress archive copy: %w", err)
	}

	archiveKey := a.ArchiveKey(key)
	if err := a.base.PutDocument(ctx, archiveKey, packed); err != nil {
		return fmt.Errorf("failed to store archive copy: %w", err)
	}

	a.logger.Debug("archived document", "key", archiveKey, "bytes", len(doc), "compressed", len(packed))
	return nil
}
