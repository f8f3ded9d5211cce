package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/async"
	"github.com/moringa-qa/client/internal/models"
)

const testQuiet = 30 * time.Millisecond

// recordingLookup captures issued lookups and serves canned results.
type recordingLookup struct {
	mu      sync.Mutex
	titles  []string
	results []models.Question
	err     error
	block   chan struct{}
}

func (r *recordingLookup) lookup(_ context.Context, title string) ([]models.Question, error) {
	r.mu.Lock()
	r.titles = append(r.titles, title)
	block := r.block
	r.mu.Unlock()
	if block != nil {
		<-block
	}
	return r.results, r.err
}

func (r *recordingLookup) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func waitForStatus(t *testing.T, a *Advisor, want async.Status) Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap := a.Snapshot()
		if snap.Status == want {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("advisor never reached status %v", want)
	return Snapshot{}
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	lookup := &recordingLookup{results: []models.Question{{Title: "similar"}}}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()
	ctx := context.Background()

	// Rapid keystrokes: the short prefixes never reach the threshold and
	// the final title fires exactly one lookup after the quiet period.
	a.SetTitle(ctx, "Ho")
	a.SetTitle(ctx, "How")
	a.SetTitle(ctx, "How do")
	a.SetTitle(ctx, "How do I center a div")

	snap := waitForStatus(t, a, async.StatusSucceeded)
	require.Equal(t, []string{"How do I center a div"}, lookup.calls())
	assert.Equal(t, "1 similar questions found", snap.Summary)
	assert.Len(t, snap.Suggestions, 1)
}

func TestBelowThresholdClearsAndResets(t *testing.T) {
	lookup := &recordingLookup{results: []models.Question{{Title: "similar"}}}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()
	ctx := context.Background()

	a.SetTitle(ctx, "How do I center a div")
	waitForStatus(t, a, async.StatusSucceeded)

	a.SetTitle(ctx, "How")
	snap := a.Snapshot()
	assert.Equal(t, async.StatusIdle, snap.Status)
	assert.Empty(t, snap.Suggestions)
	assert.Empty(t, snap.Summary)

	// The cancelled timer must not fire a second lookup later.
	time.Sleep(3 * testQuiet)
	assert.Equal(t, []string{"How do I center a div"}, lookup.calls())
}

func TestStaleResponseDiscarded(t *testing.T) {
	var mu sync.Mutex
	var titles []string
	block := make(chan struct{})
	lookup := func(_ context.Context, title string) ([]models.Question, error) {
		mu.Lock()
		titles = append(titles, title)
		mu.Unlock()
		<-block
		return []models.Question{{Title: "results for " + title}}, nil
	}

	a := New(lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()
	ctx := context.Background()

	a.SetTitle(ctx, "title A long enough")
	waitForStatus(t, a, async.StatusPending)

	// The user keeps typing while A's lookup is in flight; once A's
	// response lands it must not touch the visible list.
	a.SetTitle(ctx, "title B also long enough")
	close(block)

	snap := waitForStatus(t, a, async.StatusSucceeded)
	require.Len(t, snap.Suggestions, 1)
	assert.Equal(t, "results for title B also long enough", snap.Suggestions[0].Title)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"title A long enough", "title B also long enough"}, titles)
}

func TestFailureDistinctFromNoResults(t *testing.T) {
	lookup := &recordingLookup{err: errors.New("boom")}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()

	a.SetTitle(context.Background(), "How do I center a div")
	snap := waitForStatus(t, a, async.StatusFailed)
	assert.NotEmpty(t, snap.Err)
	assert.Empty(t, snap.Summary, "a failed check must not read as zero results")
}

func TestNoResultsSummary(t *testing.T) {
	lookup := &recordingLookup{}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()

	a.SetTitle(context.Background(), "How do I center a div")
	snap := waitForStatus(t, a, async.StatusSucceeded)
	assert.Equal(t, "No similar questions found", snap.Summary)
}

func TestCloseFencesInFlightLookup(t *testing.T) {
	lookup := &recordingLookup{
		results: []models.Question{{Title: "late"}},
		block:   make(chan struct{}),
	}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())

	a.SetTitle(context.Background(), "How do I center a div")
	waitForStatus(t, a, async.StatusPending)

	a.Close()
	close(lookup.block)
	time.Sleep(2 * testQuiet)

	assert.Empty(t, a.Snapshot().Suggestions)
}

func TestLookupIgnoresShortTitles(t *testing.T) {
	lookup := &recordingLookup{}
	a := New(lookup.lookup, DefaultMinTitleLen, testQuiet, zap.NewNop())
	defer a.Close()

	similar, err := a.Lookup(context.Background(), "short")
	require.NoError(t, err)
	assert.Nil(t, similar)
	assert.Empty(t, lookup.calls())
}
