// Package pipeline runs submitted palette rows through validation, naming
// and rendering, and hands the results to storage and notification
// collaborators.
package pipeline

import (
	"context"

	"github.com/datafam/palettes/internal/palette"
)

// RowSource supplies submitted palette rows in spreadsheet order.
type RowSource interface {
	Rows(ctx context.Context) ([]palette.Row, error)
}

// Notifier delivers out-of-band alerts. Delivery failures are the
// notifier's own concern.
type Notifier interface {
	Notify(ctx context.Context, subject, message string)
}

// DocumentSink stores the rendered preferences document under key.
type DocumentSink interface {
	PutDocument(ctx context.Context, key string, doc []byte) error
}

// DetailSink stores the flat detail table.
type DetailSink interface {
	WriteDetails(ctx context.Context, rows []palette.DetailRow) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, subject, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, subject, message string) {
	f(ctx, subject, message)
}
