// Package orchestrator issues mutations against the Q&A API and keeps one
// independent status slot per mutation kind. It never computes new values
// locally: after every successful mutation it refetches the affected
// aggregate views so the UI reconverges on server truth within one cycle.
package orchestrator

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/async"
	"github.com/moringa-qa/client/internal/gateway"
	"github.com/moringa-qa/client/internal/models"
)

// Kind identifies one mutation state machine.
type Kind string

// Mutation kinds. Each has its own status and error slot so a failed flag
// never obscures a pending vote.
const (
	KindVote          Kind = "vote"
	KindFlag          Kind = "flag"
	KindFollow        Kind = "follow"
	KindAccept        Kind = "accept"
	KindCreateAnswer  Kind = "create-answer"
	KindAdminQuestion Kind = "admin-question"
	KindAdminAnswer   Kind = "admin-answer"
)

// Mutator is the write side of the gateway. *gateway.Client satisfies it.
type Mutator interface {
	CastVote(ctx context.Context, payload models.VoteCreate) (*models.Vote, error)
	CreateFlag(ctx context.Context, payload models.FlagCreate) (*models.Flag, error)
	Follow(ctx context.Context, questionID uuid.UUID) error
	Unfollow(ctx context.Context, questionID uuid.UUID) error
	AcceptAnswer(ctx context.Context, questionID, answerID uuid.UUID) error
	CreateAnswer(ctx context.Context, questionID uuid.UUID, payload models.AnswerCreate) (*models.Answer, error)
	AdminUpdateQuestion(ctx context.Context, id uuid.UUID, patch models.AdminQuestionPatch) (*models.Question, error)
	AdminUpdateAnswer(ctx context.Context, id uuid.UUID, patch models.AdminAnswerPatch) (*models.Answer, error)
	AdminDeleteQuestion(ctx context.Context, id uuid.UUID) error
	AdminDeleteAnswer(ctx context.Context, id uuid.UUID) error
}

// Refetcher resynchronizes the aggregate views after a successful
// mutation. *aggregate.Store satisfies it.
type Refetcher interface {
	ReloadDetail(ctx context.Context) error
	ReloadAnswers(ctx context.Context) error
	SetFollowing(id uuid.UUID, following bool)
}

// Orchestrator is the central mutation state machine.
type Orchestrator struct {
	mutator Mutator
	refetch Refetcher
	logger  *zap.Logger

	mu     sync.Mutex
	states map[Kind]async.State
}

// New creates an orchestrator over the gateway and the aggregate store.
func New(mutator Mutator, refetch Refetcher, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		mutator: mutator,
		refetch: refetch,
		logger:  logger,
		states:  make(map[Kind]async.State),
	}
}

// Status returns the current state of one mutation kind.
func (o *Orchestrator) Status(kind Kind) async.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.states[kind]
}

// CastVote casts a +1/-1 vote and, on success, refetches the target's
// aggregate so the rendered score is the server's.
func (o *Orchestrator) CastVote(ctx context.Context, payload models.VoteCreate) (*models.Vote, error) {
	var vote *models.Vote
	err := o.run(ctx, KindVote, "Failed to cast vote",
		func(ctx context.Context) error {
			var err error
			vote, err = o.mutator.CastVote(ctx, payload)
			return err
		},
		o.targetRefetch(payload.TargetType))
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// CreateFlag reports content and refetches the flagged aggregate.
func (o *Orchestrator) CreateFlag(ctx context.Context, payload models.FlagCreate) (*models.Flag, error) {
	var flag *models.Flag
	err := o.run(ctx, KindFlag, "Failed to submit flag",
		func(ctx context.Context) error {
			var err error
			flag, err = o.mutator.CreateFlag(ctx, payload)
			return err
		},
		o.targetRefetch(payload.TargetType))
	if err != nil {
		return nil, err
	}
	return flag, nil
}

// Follow adds the question to the followed set. No automatic refetch: the
// follow boolean is the mutation's own return value.
func (o *Orchestrator) Follow(ctx context.Context, questionID uuid.UUID) error {
	return o.run(ctx, KindFollow, "Failed to follow question",
		func(ctx context.Context) error {
			if err := o.mutator.Follow(ctx, questionID); err != nil {
				return err
			}
			o.refetch.SetFollowing(questionID, true)
			return nil
		})
}

// Unfollow removes the question from the followed set.
func (o *Orchestrator) Unfollow(ctx context.Context, questionID uuid.UUID) error {
	return o.run(ctx, KindFollow, "Failed to unfollow question",
		func(ctx context.Context) error {
			if err := o.mutator.Unfollow(ctx, questionID); err != nil {
				return err
			}
			o.refetch.SetFollowing(questionID, false)
			return nil
		})
}

// AcceptAnswer marks an answer accepted, then refetches both the answers
// list and the detail: the accepted-answer pointer lives on the question
// and exclusivity is only ever asserted from refetched data.
func (o *Orchestrator) AcceptAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	return o.run(ctx, KindAccept, "Failed to accept answer",
		func(ctx context.Context) error {
			return o.mutator.AcceptAnswer(ctx, questionID, answerID)
		},
		o.refetch.ReloadAnswers, o.refetch.ReloadDetail)
}

// CreateAnswer posts an answer, then refetches the answers list and the
// detail (the answer count changes).
func (o *Orchestrator) CreateAnswer(ctx context.Context, questionID uuid.UUID, payload models.AnswerCreate) (*models.Answer, error) {
	var answer *models.Answer
	err := o.run(ctx, KindCreateAnswer, "Failed to post answer",
		func(ctx context.Context) error {
			var err error
			answer, err = o.mutator.CreateAnswer(ctx, questionID, payload)
			return err
		},
		o.refetch.ReloadAnswers, o.refetch.ReloadDetail)
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// AdminUpdateQuestion edits question content and refetches the detail.
func (o *Orchestrator) AdminUpdateQuestion(ctx context.Context, id uuid.UUID, patch models.AdminQuestionPatch) (*models.Question, error) {
	var question *models.Question
	err := o.run(ctx, KindAdminQuestion, "Failed to update question",
		func(ctx context.Context) error {
			var err error
			question, err = o.mutator.AdminUpdateQuestion(ctx, id, patch)
			return err
		},
		o.refetch.ReloadDetail)
	if err != nil {
		return nil, err
	}
	return question, nil
}

// AdminUpdateAnswer edits answer content and refetches the answers list.
func (o *Orchestrator) AdminUpdateAnswer(ctx context.Context, id uuid.UUID, patch models.AdminAnswerPatch) (*models.Answer, error) {
	var answer *models.Answer
	err := o.run(ctx, KindAdminAnswer, "Failed to update answer",
		func(ctx context.Context) error {
			var err error
			answer, err = o.mutator.AdminUpdateAnswer(ctx, id, patch)
			return err
		},
		o.refetch.ReloadAnswers)
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// AdminDeleteQuestion removes a question. Navigating away from the dead
// page is the caller's responsibility, so nothing is refetched.
func (o *Orchestrator) AdminDeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return o.run(ctx, KindAdminQuestion, "Failed to delete question",
		func(ctx context.Context) error {
			return o.mutator.AdminDeleteQuestion(ctx, id)
		})
}

// AdminDeleteAnswer removes an answer and refetches the answers list and
// detail (the answer count changes).
func (o *Orchestrator) AdminDeleteAnswer(ctx context.Context, id uuid.UUID) error {
	return o.run(ctx, KindAdminAnswer, "Failed to delete answer",
		func(ctx context.Context) error {
			return o.mutator.AdminDeleteAnswer(ctx, id)
		},
		o.refetch.ReloadAnswers, o.refetch.ReloadDetail)
}

// run is the one state machine every kind shares: pending (clearing the
// previous error), the gateway call, then the refetch fan-out, then
// succeeded. On failure only this kind's slot records the message; cached
// aggregates are never touched. A second run of the same kind while one is
// pending races and the last response wins.
func (o *Orchestrator) run(ctx context.Context, kind Kind, fallback string, call func(context.Context) error, refetches ...func(context.Context) error) error {
	o.setState(kind, async.State{Status: async.StatusPending})

	if err := call(ctx); err != nil {
		o.setState(kind, async.State{
			Status: async.StatusFailed,
			Err:    gateway.ErrorMessageOr(err, fallback),
		})
		return err
	}

	for _, refetch := range refetches {
		if err := refetch(ctx); err != nil {
			// The mutation itself landed; the aggregate store records the
			// failed refetch and keeps its previous data.
			o.logger.Warn("refetch after mutation failed",
				zap.String("kind", string(kind)), zap.Error(err))
		}
	}

	o.setState(kind, async.State{Status: async.StatusSucceeded})
	return nil
}

func (o *Orchestrator) targetRefetch(targetType string) func(context.Context) error {
	if targetType == models.TargetAnswer {
		return o.refetch.ReloadAnswers
	}
	return o.refetch.ReloadDetail
}

func (o *Orchestrator) setState(kind Kind, state async.State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states[kind] = state
}
