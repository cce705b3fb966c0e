package data

import (
	"context"
	"sync"
	"time"

	"rooftop-solar/internal/model"
)

// Suggester returns place suggestions for a partial query.
type Suggester interface {
	Autocomplete(ctx context.Context, query string) ([]model.Location, error)
}

// Searcher debounces a stream of queries from one user. Each call to Search
// waits for the debounce delay and then asks the Suggester; a newer call
// cancels any older one that is still waiting or in flight, so only the
// latest query's result is ever returned.
type Searcher struct {
	src   Suggester
	delay time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewSearcher(src Suggester, delay time.Duration) *Searcher {
	return &Searcher{src: src, delay: delay}
}

// Search returns suggestions for query, or ErrSuperseded if a later Search
// started before this one finished.
func (s *Searcher) Search(ctx context.Context, query string) ([]model.Location, error) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	id := s.seq
	s.cancel = cancel
	s.mu.Unlock()
	defer s.release(id, cancel)

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, s.cause(ctx, id)
		case <-timer.C:
		}
	}

	res, err := s.src.Autocomplete(ctx, query)
	if !s.latest(id) {
		return nil, ErrSuperseded
	}
	return res, err
}

func (s *Searcher) latest(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == id
}

func (s *Searcher) cause(ctx context.Context, id uint64) error {
	if !s.latest(id) {
		return ErrSuperseded
	}
	return ctx.Err()
}

func (s *Searcher) release(id uint64, cancel context.CancelFunc) {
	s.mu.Lock()
	if s.seq == id {
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel()
}
