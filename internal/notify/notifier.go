// Package notify defines the notification interface and implementations
// for delivering bot messages.
package notify

import (
	"context"
)

// Notifier delivers a plain-text message to a chat channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// NotifyError reports a failed delivery. StatusCode is set when the
// webhook answered with a non-2xx status.
type NotifyError struct {
	StatusCode int
	Err        error
}

func (e *NotifyError) Error() string {
	return e.Err.Error()
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
