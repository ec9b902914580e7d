// Package autosave persists the working document a fixed delay after the
// last mutation, collapsing bursts of edits into one write.
package autosave

import (
	"context"
	"sync"
	"time"

	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/repository"
	"github.com/sirupsen/logrus"
)

// DefaultDelay matches the editing surface's save debounce.
const DefaultDelay = 2 * time.Second

// Saver debounces project writes. Notify arms (or re-arms) a timer with
// the latest document snapshot; when the timer fires the snapshot is
// upserted. Last write wins, both locally and in the repository.
type Saver struct {
	repo   repository.ProjectRepo
	userID string
	delay  time.Duration
	log    logrus.FieldLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending *domain.Project
	closed  bool

	// saved is signalled after each completed write. Tests use it to wait
	// without sleeping past the debounce window.
	saved chan struct{}
}

// Option configures a Saver.
type Option func(*Saver)

// WithDelay overrides the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(s *Saver) { s.delay = d }
}

// WithLogger overrides the default logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Saver) { s.log = log }
}

// New creates a Saver writing the given user's documents.
func New(repo repository.ProjectRepo, userID string, opts ...Option) *Saver {
	s := &Saver{
		repo:   repo,
		userID: userID,
		delay:  DefaultDelay,
		log:    logrus.StandardLogger(),
		saved:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify schedules a save of the given snapshot, replacing any snapshot
// already waiting. A nil project clears the pending save: the document was
// closed and there is nothing to write.
func (s *Saver) Notify(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = p
	if p == nil {
		return
	}
	s.timer = time.AfterFunc(s.delay, s.flushPending)
}

// Flush writes any pending snapshot immediately. Called on shutdown so an
// armed timer does not lose the final edits.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	p := s.pending
	s.pending = nil
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	return s.save(ctx, p)
}

// Close flushes and stops the saver. Further Notify calls are ignored.
func (s *Saver) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return err
}

// Saved exposes the completion signal for callers that need to observe
// writes, such as tests.
func (s *Saver) Saved() <-chan struct{} {
	return s.saved
}

func (s *Saver) flushPending() {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	if err := s.save(context.Background(), p); err != nil {
		s.log.WithError(err).WithField("project_id", p.ID).Error("autosave failed")
	}
}

func (s *Saver) save(ctx context.Context, p *domain.Project) error {
	err := s.repo.Upsert(ctx, s.userID, p)
	select {
	case s.saved <- struct{}{}:
	default:
	}
	return err
}
