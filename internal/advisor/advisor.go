// Package advisor surfaces existing questions that look similar to a
// title the user is still typing, without flooding the network: lookups
// are debounced behind a quiet period and stale responses are discarded.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/async"
	"github.com/moringa-qa/client/internal/gateway"
	"github.com/moringa-qa/client/internal/models"
)

// Defaults mirror the server's duplicate-search threshold.
const (
	DefaultMinTitleLen = 10
	DefaultQuiet       = 500 * time.Millisecond
)

// LookupFunc queries the server for near-duplicate titles.
type LookupFunc func(ctx context.Context, title string) ([]models.Question, error)

// Snapshot is the advisor's visible state at one point in time.
type Snapshot struct {
	Status      async.Status
	Suggestions []models.Question
	Summary     string
	Err         string
}

// Advisor debounces duplicate-title lookups as the user types.
type Advisor struct {
	lookup      LookupFunc
	minTitleLen int
	quiet       time.Duration
	logger      *zap.Logger

	mu          sync.Mutex
	timer       *time.Timer
	generation  uint64
	status      async.Status
	suggestions []models.Question
	errMsg      string
	closed      bool
}

// New creates an advisor. Zero minTitleLen and quiet pick the defaults.
func New(lookup LookupFunc, minTitleLen int, quiet time.Duration, logger *zap.Logger) *Advisor {
	if minTitleLen <= 0 {
		minTitleLen = DefaultMinTitleLen
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Advisor{
		lookup:      lookup,
		minTitleLen: minTitleLen,
		quiet:       quiet,
		logger:      logger,
	}
}

// SetTitle feeds one keystroke's worth of title. Below the length
// threshold the suggestion list clears and the state resets to idle; at or
// above it, the pending lookup timer restarts.
func (a *Advisor) SetTitle(ctx context.Context, title string) {
	trimmed := strings.TrimSpace(title)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	a.stopTimerLocked()
	a.generation++

	if len(trimmed) < a.minTitleLen {
		a.status = async.StatusIdle
		a.suggestions = nil
		a.errMsg = ""
		return
	}

	gen := a.generation
	a.timer = time.AfterFunc(a.quiet, func() {
		a.fire(ctx, gen, trimmed)
	})
}

// Lookup runs one immediate, undebounced lookup. Used by one-shot callers
// such as a pre-submit duplicate check.
func (a *Advisor) Lookup(ctx context.Context, title string) ([]models.Question, error) {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < a.minTitleLen {
		return nil, nil
	}
	return a.lookup(ctx, trimmed)
}

// Snapshot returns a copy of the visible state.
func (a *Advisor) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	suggestions := make([]models.Question, len(a.suggestions))
	copy(suggestions, a.suggestions)
	return Snapshot{
		Status:      a.status,
		Suggestions: suggestions,
		Summary:     summaryLocked(a.status, len(a.suggestions)),
		Err:         a.errMsg,
	}
}

// Close cancels any pending timer and fences out in-flight lookups so
// nothing is applied after teardown.
func (a *Advisor) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.stopTimerLocked()
	a.generation++
}

func (a *Advisor) fire(ctx context.Context, gen uint64, title string) {
	a.mu.Lock()
	if a.closed || gen != a.generation {
		a.mu.Unlock()
		return
	}
	a.status = async.StatusPending
	a.errMsg = ""
	a.mu.Unlock()

	questions, err := a.lookup(ctx, title)

	a.mu.Lock()
	defer a.mu.Unlock()
	// The input moved on while the request was in flight; the result is
	// stale and silently dropped.
	if a.closed || gen != a.generation {
		a.logger.Debug("discarding stale duplicate lookup", zap.String("title", title))
		return
	}
	if err != nil {
		a.status = async.StatusFailed
		a.errMsg = gateway.ErrorMessageOr(err, "Failed to check for duplicates")
		a.suggestions = nil
		return
	}
	a.status = async.StatusSucceeded
	a.suggestions = questions
}

func (a *Advisor) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func summaryLocked(status async.Status, count int) string {
	if status != async.StatusSucceeded {
		return ""
	}
	if count == 0 {
		return "No similar questions found"
	}
	return fmt.Sprintf("%d similar questions found", count)
}
