// Package notify is the snack-bar stand-in: user-visible toasts become
// structured log lines, or whatever a custom Notifier decides.
package notify

import (
	"time"

	"go.uber.org/zap"
)

// Notifier shows a transient user-facing message. Fire-and-forget.
type Notifier interface {
	Show(message, actionLabel string, duration time.Duration)
}

// Log is a Notifier backed by zap.
type Log struct {
	logger *zap.Logger
}

// NewLog builds a logging notifier. A nil logger degrades to a no-op.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (n *Log) Show(message, actionLabel string, duration time.Duration) {
	n.logger.Info("notification",
		zap.String("message", message),
		zap.String("action", actionLabel),
		zap.Duration("duration", duration),
	)
}

// Func adapts a plain function into a Notifier; handy in tests.
type Func func(message, actionLabel string, duration time.Duration)

func (f Func) Show(message, actionLabel string, duration time.Duration) {
	f(message, actionLabel, duration)
}
