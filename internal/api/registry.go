package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/pawsprefs/paws/internal/metrics"
	"github.com/pawsprefs/paws/internal/model"
	"github.com/pawsprefs/paws/internal/session"
)

// Registry holds one controller per HTTP session, keyed by ULID.
//
// Controllers are not safe for concurrent use, so every entry carries its own
// mutex. Generation runs outside that mutex; the controller's ticket check
// drops a result that a concurrent restart has superseded.
type Registry struct {
	gen    session.Generator
	count  int
	max    int
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	order   []string // creation order, oldest first
}

type entry struct {
	mu   sync.Mutex
	ctrl *session.Controller
}

// NewRegistry creates a registry that deals decks of count cards and keeps at
// most max sessions, evicting the oldest.
func NewRegistry(gen session.Generator, count, max int, logger *slog.Logger) *Registry {
	if max < 1 {
		max = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		gen:     gen,
		count:   count,
		max:     max,
		logger:  logger,
		entries: make(map[string]*entry),
	}
}

// create registers a new controller in the Loading phase.
func (r *Registry) create() (string, *entry) {
	id := ulid.Make().String()
	e := &entry{ctrl: session.New(r.gen, r.count, r.logger.With("session", id))}

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.order) >= r.max {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.entries, oldest)
		r.logger.Info("session evicted", "session", oldest)
	}
	r.entries[id] = e
	r.order = append(r.order, id)
	metrics.SetLiveSessions(len(r.entries))
	return id, e
}

// get looks up a session.
func (r *Registry) get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	metrics.SetLiveSessions(len(r.entries))
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// start deals a fresh deck for e.
func (e *entry) start(ctx context.Context) (session.State, error) {
	e.mu.Lock()
	t := e.ctrl.Begin()
	e.mu.Unlock()
	metrics.SessionStarted()

	deck, genErr := e.ctrl.Generate(ctx, t)

	e.mu.Lock()
	defer e.mu.Unlock()
	err := e.ctrl.Complete(t, deck, genErr)
	if errors.Is(err, session.ErrStaleGeneration) {
		metrics.StaleGeneration()
	}
	return e.ctrl.Snapshot(), err
}

func (e *entry) apply(d model.Decision) (session.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ctrl.Apply(d); err != nil {
		return e.ctrl.Snapshot(), err
	}
	metrics.DecisionApplied(d)
	return e.ctrl.Snapshot(), nil
}

func (e *entry) snapshot() session.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Snapshot()
}

func (e *entry) summary() (session.Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctrl.Summary()
}
