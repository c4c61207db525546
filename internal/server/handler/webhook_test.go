package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
)

const secret = "s3cret"

type recordingDispatcher struct {
	events []*core.TranslationEvent
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev *core.TranslationEvent) error {
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, ev)
	return nil
}

func (d *recordingDispatcher) Stop() {}

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func request(eventType, body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/github", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-Hub-Signature-256", signature)
	return req
}

const repoJSON = `"repository": {"name": "docs", "full_name": "acme/docs", "owner": {"login": "acme"}},
	"installation": {"id": 42}`

func TestWebhookHandler(t *testing.T) {
	tests := []struct {
		name       string
		eventType  string
		body       string
		badSig     bool
		wantStatus int
		wantKind   core.EntityKind
	}{
		{
			name:       "issue opened",
			eventType:  "issues",
			body:       `{"action": "opened", "issue": {"number": 5, "body": "Hello"}, "sender": {"login": "alice", "type": "User"}, ` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantKind:   core.KindIssue,
		},
		{
			name:       "issue comment created",
			eventType:  "issue_comment",
			body:       `{"action": "created", "issue": {"number": 5}, "comment": {"id": 77, "body": "hi"}, "sender": {"login": "alice", "type": "User"}, ` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantKind:   core.KindComment,
		},
		{
			name:       "pull request edited",
			eventType:  "pull_request",
			body:       `{"action": "edited", "number": 9, "pull_request": {"number": 9}, "sender": {"login": "alice", "type": "User"}, ` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantKind:   core.KindPullRequest,
		},
		{
			name:       "review comment created",
			eventType:  "pull_request_review_comment",
			body:       `{"action": "created", "pull_request": {"number": 9}, "comment": {"id": 3}, "sender": {"login": "alice", "type": "User"}, ` + repoJSON + `}`,
			wantStatus: http.StatusAccepted,
			wantKind:   core.KindReviewComment,
		},
		{
			name:       "bot sender is ignored",
			eventType:  "issues",
			body:       `{"action": "edited", "issue": {"number": 5}, "sender": {"login": "bilingo[bot]", "type": "Bot"}, ` + repoJSON + `}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "closed issue is ignored",
			eventType:  "issues",
			body:       `{"action": "closed", "issue": {"number": 5}, "sender": {"login": "alice", "type": "User"}, ` + repoJSON + `}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unhandled event type",
			eventType:  "star",
			body:       `{"action": "created", ` + repoJSON + `}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing installation",
			eventType:  "issues",
			body:       `{"action": "opened", "issue": {"number": 5}, "sender": {"login": "alice"}, "repository": {"name": "docs", "owner": {"login": "acme"}}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad signature",
			eventType:  "issues",
			body:       `{"action": "opened"}`,
			badSig:     true,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &recordingDispatcher{}
			cfg := &config.Config{GitHub: config.GitHubConfig{WebhookSecret: secret}}
			h := NewWebhookHandler(cfg, dispatcher, slog.New(slog.NewTextHandler(io.Discard, nil)))

			sig := sign(tt.body)
			if tt.badSig {
				sig = "sha256=deadbeef"
			}
			rec := httptest.NewRecorder()
			h.Handle(rec, request(tt.eventType, tt.body, sig))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantKind == "" {
				assert.Empty(t, dispatcher.events)
				return
			}
			require.Len(t, dispatcher.events, 1)
			ev := dispatcher.events[0]
			assert.Equal(t, tt.wantKind, ev.Kind)
			assert.Equal(t, "acme", ev.RepoOwner)
			assert.Equal(t, int64(42), ev.InstallationID)
		})
	}
}

func TestWebhookHandler_QueueFull(t *testing.T) {
	dispatcher := &recordingDispatcher{err: errors.New("job queue is full")}
	cfg := &config.Config{GitHub: config.GitHubConfig{WebhookSecret: secret}}
	h := NewWebhookHandler(cfg, dispatcher, slog.New(slog.NewTextHandler(io.Discard, nil)))

	body := `{"action": "opened", "issue": {"number": 5}, "sender": {"login": "alice"}, ` + repoJSON + `}`
	rec := httptest.NewRecorder()
	h.Handle(rec, request("issues", body, sign(body)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
