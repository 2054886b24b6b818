package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded messages. It backs
// the dry-run mode of the bot.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards messages with a log line.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Send logs and discards message.
func (n *NoOpNotifier) Send(_ context.Context, message string) error {
	n.log.Info("notification discarded (dry run)", "message", message)
	return nil
}
