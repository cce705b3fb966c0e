package data

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rooftop-solar/internal/model"
)

type fakeSuggester struct {
	mu      sync.Mutex
	queries []string
	// blockOn holds this query until its context is cancelled.
	blockOn string
}

func (f *fakeSuggester) Autocomplete(ctx context.Context, query string) ([]model.Location, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if query == f.blockOn {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []model.Location{{DisplayName: query}}, nil
}

func (f *fakeSuggester) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func TestSearcherReturnsLatestOnly(t *testing.T) {
	src := &fakeSuggester{}
	s := NewSearcher(src, 30*time.Millisecond)

	var wg sync.WaitGroup
	errs := make([]error, 3)
	results := make([][]model.Location, 3)
	for i, q := range []string{"Ban", "Bang", "Bangalore"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Search(context.Background(), q)
		}()
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	assert.ErrorIs(t, errs[0], ErrSuperseded)
	assert.ErrorIs(t, errs[1], ErrSuperseded)
	require.NoError(t, errs[2])
	assert.Equal(t, "Bangalore", results[2][0].DisplayName)
	assert.Equal(t, []string{"Bangalore"}, src.seen(), "debounced queries never reach the service")
}

func TestSearcherCancelsInFlightQuery(t *testing.T) {
	src := &fakeSuggester{blockOn: "Delhi"}
	s := NewSearcher(src, 0)

	done := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "Delhi")
		done <- err
	}()
	require.Eventually(t, func() bool { return len(src.seen()) == 1 }, time.Second, time.Millisecond)

	res, err := s.Search(context.Background(), "Delhi NCR")
	require.NoError(t, err)
	assert.Equal(t, "Delhi NCR", res[0].DisplayName)
	assert.ErrorIs(t, <-done, ErrSuperseded)
}

func TestSearcherHonoursCallerContext(t *testing.T) {
	s := NewSearcher(&fakeSuggester{}, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Search(ctx, "Chennai")
	assert.ErrorIs(t, err, context.Canceled)
}
