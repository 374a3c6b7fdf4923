// Package compression provides the xz codec used for archived documents.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/datafam/palettes/internal/security"
)

// Extension is appended to the key of an xz-compressed object.
const Extension = ".xz"

// ContentType is the media type of xz-compressed data.
const ContentType = "application/x-xz"

// DefaultMaxDecompressedBytes bounds Decompress when no limit is given.
const DefaultMaxDecompressedBytes = 16 * 1024 * 1024

// Compress returns data compressed with xz.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress expands xz data, failing with security.ErrBodyTooLarge once
// more than maxBytes have been produced. A maxBytes of zero or less uses
// DefaultMaxDecompressedBytes.
func Decompress(data []byte, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxDecompressedBytes
	}

	xzr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	out, err := io.ReadAll(security.NewLimitedReader(xzr, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}
