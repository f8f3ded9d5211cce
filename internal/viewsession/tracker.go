package viewsession

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackSessionToken is used when the store cannot hold a generated
// token. View tracking becomes non-unique, which only skews an analytics
// counter.
const FallbackSessionToken = "anonymous-session"

const (
	sessionTokenKey = "session_token"
	viewedKeyPrefix = "viewed:"
	viewedValue     = "1"
)

// Tracker guarantees the "has been viewed" signal is sent at most once per
// question within a session, store permitting.
type Tracker struct {
	store  Store
	logger *zap.Logger

	mu       sync.Mutex
	token    string
	degraded bool
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store, logger *zap.Logger) *Tracker {
	return &Tracker{store: store, logger: logger}
}

// SessionToken returns the stable random identifier for this session,
// generating and persisting it on first use. A failing store yields the
// constant fallback token.
func (t *Tracker) SessionToken(ctx context.Context) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.token != "" {
		return t.token
	}

	existing, err := t.store.Get(ctx, sessionTokenKey)
	if err == nil && existing != "" {
		t.token = existing
		return t.token
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.warnDegraded(err)
		return FallbackSessionToken
	}

	generated := uuid.NewString()
	if err := t.store.Set(ctx, sessionTokenKey, generated); err != nil {
		t.warnDegraded(err)
		return FallbackSessionToken
	}
	t.token = generated
	return t.token
}

// HasViewed reports whether this question was already counted in this
// session. Store failures read as "not viewed" (fail-open).
func (t *Tracker) HasViewed(ctx context.Context, questionID uuid.UUID) bool {
	v, err := t.store.Get(ctx, viewedKeyPrefix+questionID.String())
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.mu.Lock()
			t.warnDegraded(err)
			t.mu.Unlock()
		}
		return false
	}
	return v == viewedValue
}

// MarkViewed records the question as counted. Called right after the
// tracked fetch is issued, not after it resolves; a failed fetch still
// marks the question, trading a rare under-count for no rollback path.
func (t *Tracker) MarkViewed(ctx context.Context, questionID uuid.UUID) {
	if err := t.store.Set(ctx, viewedKeyPrefix+questionID.String(), viewedValue); err != nil {
		t.mu.Lock()
		t.warnDegraded(err)
		t.mu.Unlock()
	}
}

// warnDegraded logs the first storage failure once. Callers must hold mu.
func (t *Tracker) warnDegraded(err error) {
	if t.degraded {
		return
	}
	t.degraded = true
	t.logger.Warn("view-session storage unavailable, view tracking is best-effort", zap.Error(err))
}
