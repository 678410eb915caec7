package store

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/noah-isme/form-builder/internal/models"
	appErrors "github.com/noah-isme/form-builder/pkg/errors"
)

// Store owns the application state tree. It is the single writer: all other
// components read snapshots via State/selectors and write by dispatching
// actions. Dispatch is serialized by a mutex, which supplies the
// single-writer-at-a-time guarantee a UI event loop would otherwise provide.
type Store struct {
	mu    sync.Mutex
	state models.AppState

	subMu   sync.Mutex
	subs    map[int]chan Action
	nextSub int

	logger       *zap.Logger
	actionsTotal *prometheus.CounterVec
}

// Option customises a Store.
type Option func(*Store)

// WithLogger attaches a logger for dropped-subscriber warnings.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithActionCounter records every dispatched action kind.
func WithActionCounter(c *prometheus.CounterVec) Option {
	return func(s *Store) { s.actionsTotal = c }
}

// New builds a store holding the initial state tree.
func New(opts ...Option) *Store {
	s := &Store{
		state:  models.InitialAppState(),
		subs:   make(map[int]chan Action),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch runs both reducers over the action and then fans it out to
// subscribers. Reducers are pure, so the critical section contains no I/O.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state.Auth = reduceAuth(s.state.Auth, action)
	s.state.FormBuilder = reduceFormBuilder(s.state.FormBuilder, action)
	s.mu.Unlock()

	if s.actionsTotal != nil {
		s.actionsTotal.WithLabelValues(action.Kind()).Inc()
	}

	s.publish(action)
}

// State returns a deep-copied snapshot. Callers never observe later
// dispatches through a snapshot, and cannot corrupt live state through one.
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe returns a buffered feed of every subsequently dispatched action
// and a cancel function. A subscriber that falls behind has actions dropped
// rather than blocking dispatch.
func (s *Store) Subscribe(buffer int) (<-chan Action, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Action, buffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

// DispatchAndWait dispatches a request action and blocks until an action of a
// different kind carrying the same trace arrives, the usual shape of a
// success/failure reply from an effect. Synchronous actions have no reply;
// callers must not wait on those.
func (s *Store) DispatchAndWait(ctx context.Context, action Action) (Action, error) {
	ch, cancel := s.Subscribe(32)
	defer cancel()

	s.Dispatch(action)

	for {
		select {
		case <-ctx.Done():
			return nil, appErrors.Wrap(ctx.Err(), appErrors.ErrRequestTimedOut.Code,
				appErrors.ErrRequestTimedOut.Status, appErrors.ErrRequestTimedOut.Message)
		case reply, ok := <-ch:
			if !ok {
				return nil, appErrors.ErrInternal
			}
			if reply.TraceID() == action.TraceID() && reply.Kind() != action.Kind() {
				return reply, nil
			}
		}
	}
}

func (s *Store) publish(action Action) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- action:
		default:
			s.logger.Warn("subscriber lagging, action dropped",
				zap.Int("subscriber", id),
				zap.String("kind", action.Kind()),
			)
		}
	}
}
