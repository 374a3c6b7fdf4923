// Package notify delivers operator alerts raised during a run.
package notify

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Notifier delivers a message. Delivery failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, subject, message string)
}

// LogNotifier writes alerts to a logger instead of delivering them.
type LogNotifier struct {
	logger hclog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger hclog.Logger) *LogNotifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, subject, message string) {
	n.logger.Info("notification", "subject", subject, "message", message)
}

// Multi fans a message out to several notifiers in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, subject, message string) {
	for _, n := range m {
		n.Notify(ctx, subject, message)
	}
}
