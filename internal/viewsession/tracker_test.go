package viewsession

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// brokenStore fails every operation, like session storage in a private
// browsing mode.
type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("storage unavailable")
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("storage unavailable")
}

func TestMarkViewedOncePerSession(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()
	questionID := uuid.New()

	assert.False(t, tracker.HasViewed(ctx, questionID))
	tracker.MarkViewed(ctx, questionID)
	assert.True(t, tracker.HasViewed(ctx, questionID))

	// Other questions are unaffected.
	assert.False(t, tracker.HasViewed(ctx, uuid.New()))
}

func TestSessionTokenStable(t *testing.T) {
	tracker := NewTracker(NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	token := tracker.SessionToken(ctx)
	require.NotEmpty(t, token)
	require.NotEqual(t, FallbackSessionToken, token)
	_, err := uuid.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, token, tracker.SessionToken(ctx))
}

func TestSessionTokenSharedViaStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := NewTracker(store, zap.NewNop()).SessionToken(ctx)
	second := NewTracker(store, zap.NewNop()).SessionToken(ctx)
	assert.Equal(t, first, second)
}

func TestBrokenStoreFailsOpen(t *testing.T) {
	tracker := NewTracker(brokenStore{}, zap.NewNop())
	ctx := context.Background()
	questionID := uuid.New()

	// Degraded mode: constant token, every view reads as fresh, marking
	// is a no-op. Never an error.
	assert.Equal(t, FallbackSessionToken, tracker.SessionToken(ctx))
	assert.False(t, tracker.HasViewed(ctx, questionID))
	tracker.MarkViewed(ctx, questionID)
	assert.False(t, tracker.HasViewed(ctx, questionID))
}
