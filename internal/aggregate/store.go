// Package aggregate holds the in-memory snapshot of one question's
// rendered view: the detail object, an independently fetched answers list,
// and the caller's follow set. The server is the only source of truth;
// the store advances exclusively through full refetches.
package aggregate

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/async"
	"github.com/moringa-qa/client/internal/gateway"
	"github.com/moringa-qa/client/internal/models"
	"github.com/moringa-qa/client/internal/viewsession"
)

// Fetcher is the read side of the gateway the store depends on.
// *gateway.Client satisfies it.
type Fetcher interface {
	GetQuestion(ctx context.Context, id uuid.UUID, view gateway.ViewOptions) (*models.QuestionDetail, error)
	ListAnswers(ctx context.Context, questionID uuid.UUID) ([]models.Answer, error)
	ListFollows(ctx context.Context) ([]models.Question, error)
}

// Store is the aggregate consistency model for the question currently
// being viewed. Single-owner per question id; methods are safe for
// concurrent use but callers are expected to drive it from one view.
type Store struct {
	fetcher Fetcher
	tracker *viewsession.Tracker
	logger  *zap.Logger

	mu           sync.Mutex
	questionID   uuid.UUID
	detail       *models.QuestionDetail
	detailState  async.State
	answers      []models.Answer
	answersState async.State
	follows      map[uuid.UUID]bool
}

// NewStore creates an empty aggregate store.
func NewStore(fetcher Fetcher, tracker *viewsession.Tracker, logger *zap.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		tracker: tracker,
		logger:  logger,
		follows: make(map[uuid.UUID]bool),
	}
}

// Load fetches the detail aggregate for a question id, consulting the
// view-session tracker for the track_view decision. Safe to call
// repeatedly; each call is a full replace. While the fetch is pending any
// previously rendered detail is discarded, so rapid navigation can never
// show data for the wrong question id.
func (s *Store) Load(ctx context.Context, id uuid.UUID) error {
	track := !s.tracker.HasViewed(ctx, id)
	view := gateway.ViewOptions{
		TrackView:    track,
		SessionToken: s.tracker.SessionToken(ctx),
	}

	s.mu.Lock()
	s.questionID = id
	s.detail = nil
	s.detailState = async.State{Status: async.StatusPending}
	s.mu.Unlock()

	// Marked as soon as the tracked fetch is issued. A failed fetch still
	// counts the view; under-counting once beats a rollback path.
	if track {
		s.tracker.MarkViewed(ctx, id)
	}

	detail, err := s.fetcher.GetQuestion(ctx, id, view)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionID != id {
		// A later Load took over; this response is for an old navigation.
		return nil
	}
	if err != nil {
		s.detailState = async.State{
			Status: async.StatusFailed,
			Err:    gateway.ErrorMessageOr(err, "Failed to load question"),
		}
		return err
	}
	s.detail = detail
	s.detailState = async.State{Status: async.StatusSucceeded}
	return nil
}

// ReloadDetail refetches the current question's detail without touching
// the view counter. No-op when nothing is loaded.
func (s *Store) ReloadDetail(ctx context.Context) error {
	s.mu.Lock()
	id := s.questionID
	s.mu.Unlock()
	if id == uuid.Nil {
		return nil
	}

	detail, err := s.fetcher.GetQuestion(ctx, id, gateway.ViewOptions{
		TrackView:    false,
		SessionToken: s.tracker.SessionToken(ctx),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionID != id {
		return nil
	}
	if err != nil {
		// The previously rendered detail stays authoritative on a failed
		// refetch; only the state records the failure.
		s.detailState = async.State{
			Status: async.StatusFailed,
			Err:    gateway.ErrorMessageOr(err, "Failed to load question"),
		}
		return err
	}
	s.detail = detail
	s.detailState = async.State{Status: async.StatusSucceeded}
	return nil
}

// LoadAnswers fetches the flat answers list for a question id.
func (s *Store) LoadAnswers(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	s.questionID = id
	s.answersState = async.State{Status: async.StatusPending}
	s.mu.Unlock()

	answers, err := s.fetcher.ListAnswers(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionID != id {
		return nil
	}
	if err != nil {
		s.answersState = async.State{
			Status: async.StatusFailed,
			Err:    gateway.ErrorMessageOr(err, "Failed to load answers"),
		}
		return err
	}
	// Wholesale replacement; answers are never merged or edited in place.
	s.answers = answers
	s.answersState = async.State{Status: async.StatusSucceeded}
	return nil
}

// ReloadAnswers refetches the current question's answers list.
func (s *Store) ReloadAnswers(ctx context.Context) error {
	s.mu.Lock()
	id := s.questionID
	s.mu.Unlock()
	if id == uuid.Nil {
		return nil
	}
	return s.LoadAnswers(ctx, id)
}

// RefreshFollows replaces the follow set from GET /me/follows.
func (s *Store) RefreshFollows(ctx context.Context) error {
	questions, err := s.fetcher.ListFollows(ctx)
	if err != nil {
		return err
	}
	follows := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		follows[q.ID] = true
	}
	s.mu.Lock()
	s.follows = follows
	s.mu.Unlock()
	return nil
}

// IsFollowing reports membership of the question in the fetched follow
// set.
func (s *Store) IsFollowing(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows[id]
}

// SetFollowing applies the single boolean a follow/unfollow mutation
// returns. Everything else about the follow set comes from RefreshFollows.
func (s *Store) SetFollowing(id uuid.UUID, following bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if following {
		s.follows[id] = true
		return
	}
	delete(s.follows, id)
}

// Detail returns the current detail (nil while pending or failed) and its
// state.
func (s *Store) Detail() (*models.QuestionDetail, async.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil, s.detailState
	}
	copied := *s.detail
	copied.Answers = append([]models.Answer(nil), s.detail.Answers...)
	copied.Tags = append([]models.Tag(nil), s.detail.Tags...)
	copied.RelatedQuestions = append([]models.Question(nil), s.detail.RelatedQuestions...)
	return &copied, s.detailState
}

// Answers returns a copy of the answers list and its state.
func (s *Store) Answers() ([]models.Answer, async.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Answer(nil), s.answers...), s.answersState
}

// QuestionID returns the id the store currently tracks.
func (s *Store) QuestionID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionID
}

// Reset clears all held state, for session teardown (logout).
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionID = uuid.Nil
	s.detail = nil
	s.detailState = async.State{}
	s.answers = nil
	s.answersState = async.State{}
	s.follows = make(map[uuid.UUID]bool)
	s.logger.Debug("aggregate store reset")
}
