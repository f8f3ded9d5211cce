package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moringa-qa/client/internal/auth"
	"github.com/moringa-qa/client/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, auth.StaticToken("test-token"), server.Client(), zap.NewNop())
}

func TestGetQuestionShapesRequest(t *testing.T) {
	questionID := uuid.New()
	var gotPath, gotTrackView, gotSession, gotAuth string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTrackView = r.URL.Query().Get("track_view")
		gotSession = r.Header.Get(SessionTokenHeader)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + questionID.String() + `","title":"How do I center a div","vote_score":3,"answers":[],"tags":[],"related_questions":[]}`))
	}))

	detail, err := client.GetQuestion(context.Background(), questionID, ViewOptions{
		TrackView:    true,
		SessionToken: "session-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/questions/"+questionID.String(), gotPath)
	assert.Equal(t, "true", gotTrackView)
	assert.Equal(t, "session-1", gotSession)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, questionID, detail.ID)
	assert.Equal(t, 3, detail.VoteScore)
}

func TestRemoteErrorDetailExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "structured detail",
			status:      http.StatusForbidden,
			body:        `{"detail":"You cannot vote on your own question"}`,
			wantMessage: "You cannot vote on your own question",
		},
		{
			name:        "no detail body",
			status:      http.StatusInternalServerError,
			body:        `oops`,
			wantMessage: GenericErrorMessage,
		},
		{
			name:        "empty detail",
			status:      http.StatusBadRequest,
			body:        `{"detail":""}`,
			wantMessage: GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.CastVote(context.Background(), models.VoteCreate{
				TargetType: models.TargetQuestion,
				TargetID:   uuid.New(),
				Value:      1,
			})
			require.Error(t, err)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, tt.wantMessage, ErrorMessage(err))
		})
	}
}

func TestErrorMessageTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", auth.StaticToken("t"), nil, zap.NewNop())
	_, err := client.ListFollows(context.Background())
	require.Error(t, err)
	assert.Equal(t, GenericErrorMessage, ErrorMessage(err))
	assert.Equal(t, "Failed to cast vote", ErrorMessageOr(err, "Failed to cast vote"))
}

func TestCastVoteRejectsInvalidPayload(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.CastVote(context.Background(), models.VoteCreate{
		TargetType: models.TargetQuestion,
		TargetID:   uuid.New(),
		Value:      0,
	})
	require.Error(t, err)
	assert.Zero(t, calls, "invalid payload must not reach the network")
}

func TestAcceptAnswerPath(t *testing.T) {
	questionID, answerID := uuid.New(), uuid.New()
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.AcceptAnswer(context.Background(), questionID, answerID))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/questions/"+questionID.String()+"/answers/"+answerID.String()+"/accept", gotPath)
}

func TestAdminRoutes(t *testing.T) {
	id := uuid.New()
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + id.String() + `"}`))
	}))

	title := "edited"
	_, err := client.AdminUpdateQuestion(context.Background(), id, models.AdminQuestionPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/admin/content/questions/"+id.String(), gotPath)

	require.NoError(t, client.AdminDeleteAnswer(context.Background(), id))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/content/answers/"+id.String(), gotPath)
}
