// Package nav is the router stand-in consumed by effects and the runtime
// renderer. Navigation is fire-and-forget and never dispatches state actions.
package nav

import (
	"sync"

	"go.uber.org/zap"
)

// Navigator performs a navigation request.
type Navigator interface {
	NavigateTo(path string, params map[string]string)
}

// Log records navigations as structured log lines.
type Log struct {
	logger *zap.Logger
}

// NewLog builds a logging navigator. A nil logger degrades to a no-op.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (n *Log) NavigateTo(path string, params map[string]string) {
	fields := []zap.Field{zap.String("path", path)}
	if len(params) > 0 {
		fields = append(fields, zap.Any("params", params))
	}
	n.logger.Info("navigate", fields...)
}

// Visit is one recorded navigation.
type Visit struct {
	Path   string
	Params map[string]string
}

// Recorder captures navigations for inspection; used by tests and the shell's
// diagnostics endpoint.
type Recorder struct {
	mu     sync.Mutex
	visits []Visit
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NavigateTo(path string, params map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, Visit{Path: path, Params: params})
}

// Visits returns a copy of everything recorded so far.
func (r *Recorder) Visits() []Visit {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Visit, len(r.visits))
	copy(out, r.visits)
	return out
}
