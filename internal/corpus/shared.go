package corpus

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"docsearch/internal/domain"
)

// Shared memoizes a single load of an underlying Provider.
//
// The first call starts the load; concurrent callers wait on that same load.
// The outcome, including a failure, is kept until Reset. Records without a
// url or title are dropped and logged; they never fail the load.
type Shared struct {
	source Provider
	logger *slog.Logger

	mu   sync.Mutex
	call *loadCall
}

type loadCall struct {
	done  chan struct{}
	pages []domain.CorpusPage
	err   error
}

// NewShared wraps source.
func NewShared(source Provider, logger *slog.Logger) *Shared {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shared{source: source, logger: logger}
}

// Pages returns the memoized corpus, starting the load if needed.
// ctx only bounds this caller's wait; it never cancels the shared load.
func (s *Shared) Pages(ctx context.Context) ([]domain.CorpusPage, error) {
	s.mu.Lock()
	c := s.call
	if c == nil {
		c = &loadCall{done: make(chan struct{})}
		s.call = c
		go s.load(c)
	}
	s.mu.Unlock()

	select {
	case <-c.done:
		return c.pages, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Shared) load(c *loadCall) {
	defer close(c.done)

	begin := time.Now()
	c.pages, c.err = s.source.Pages(context.Background())
	if c.err != nil {
		s.logger.Error("corpus load failed", "error", c.err, "duration", time.Since(begin))
		return
	}
	var dropped int
	c.pages, dropped = Valid(c.pages)
	if dropped > 0 {
		s.logger.Warn("skipping corpus records", "error", ErrInvalidPage, "skipped", dropped)
	}
	s.logger.Info("corpus loaded", "pages", len(c.pages), "duration", time.Since(begin))
}

// Settled reports whether a load has finished, successfully or not.
func (s *Shared) Settled() bool {
	s.mu.Lock()
	c := s.call
	s.mu.Unlock()
	if c == nil {
		return false
	}
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Reset forgets the memoized outcome so the next call loads again.
// A load still in flight completes for the callers already waiting on it.
func (s *Shared) Reset() {
	s.mu.Lock()
	s.call = nil
	s.mu.Unlock()
}
