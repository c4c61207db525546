package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, *core.TranslationEvent) error { return nil }
func (nopDispatcher) Stop()                                                  {}

func TestRouter(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Port: "0"}, GitHub: config.GitHubConfig{WebhookSecret: "x"}}
	srv := NewServer(context.Background(), cfg, nopDispatcher{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/webhook/github", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/webhook/github", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
