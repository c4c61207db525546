// Package handler provides HTTP handlers for the bilingo webhook server.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
)

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes GitHub webhook requests.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.GitHub.WebhookSecret))
	if err != nil {
		h.logger.Error("invalid webhook payload signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(r)
	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "type", eventType, "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	var translationEvent *core.TranslationEvent
	switch e := event.(type) {
	case *github.PingEvent:
		_, _ = fmt.Fprint(w, "pong")
		return
	case *github.IssuesEvent:
		translationEvent, err = core.EventFromIssues(e)
	case *github.IssueCommentEvent:
		translationEvent, err = core.EventFromIssueComment(e)
	case *github.PullRequestEvent:
		translationEvent, err = core.EventFromPullRequest(e)
	case *github.PullRequestReviewCommentEvent:
		translationEvent, err = core.EventFromPullRequestReviewComment(e)
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", eventType)
		_, _ = fmt.Fprint(w, "Event type not handled")
		return
	}

	if err != nil {
		if errors.Is(err, core.ErrIgnoredEvent) {
			h.logger.Debug("ignoring webhook event", "type", eventType, "reason", err.Error())
			_, _ = fmt.Fprint(w, "Event ignored")
			return
		}
		h.logger.Warn("malformed webhook event", "type", eventType, "error", err)
		http.Error(w, "Malformed event", http.StatusBadRequest)
		return
	}

	h.dispatch(r.Context(), w, translationEvent)
}

func (h *WebhookHandler) dispatch(ctx context.Context, w http.ResponseWriter, event *core.TranslationEvent) {
	if err := h.dispatcher.Dispatch(ctx, event); err != nil {
		h.logger.Error("failed to dispatch translation job", "error", err, "repo", event.RepoFullName, "entity", event.Key())
		http.Error(w, "Failed to start translation job", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("translation job dispatched successfully", "repo", event.RepoFullName, "entity", event.Key(), "action", event.Action)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Translation job accepted")
}
