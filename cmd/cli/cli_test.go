package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	gh "github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/docsync"
	"github.com/sevigo/bilingo/internal/github"
	"github.com/sevigo/bilingo/internal/gitutil"
	"github.com/sevigo/bilingo/mocks"
)

func TestSyncOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    syncOptions
		wantErr bool
	}{
		{name: "no mode", opts: syncOptions{repoPath: "."}, wantErr: true},
		{name: "initial setup", opts: syncOptions{repoPath: ".", initialSetup: true}},
		{name: "files", opts: syncOptions{repoPath: ".", files: []string{"README.md"}}},
		{name: "files and deletions", opts: syncOptions{repoPath: ".", files: []string{"a.md"}, deletedFiles: []string{"b.md"}}},
		{name: "changed in", opts: syncOptions{repoPath: ".", changedIn: "HEAD"}},
		{name: "two modes", opts: syncOptions{repoPath: ".", initialSetup: true, files: []string{"a.md"}}, wantErr: true},
		{name: "empty repo path", opts: syncOptions{initialSetup: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarkdownOnly(t *testing.T) {
	assert.Equal(t, []string{"README.md", "docs/Guide.MD"}, markdownOnly([]string{"README.md", "main.go", "docs/Guide.MD"}))
	assert.Empty(t, markdownOnly(nil))
}

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func noOrigin() (string, string, error) { return "", "", errors.New("no origin") }

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name    string
		opts    translateOptions
		env     map[string]string
		origin  func() (string, string, error)
		want    *core.TranslationEvent
		wantErr bool
	}{
		{
			name: "url",
			opts: translateOptions{url: "https://github.com/acme/docs/issues/7#issuecomment-99"},
			want: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", RepoFullName: "acme/docs", Kind: core.KindComment, Number: 7, CommentID: 99},
		},
		{
			name: "flags",
			opts: translateOptions{repo: "acme/docs", number: 3, kind: "pr"},
			want: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", RepoFullName: "acme/docs", Kind: core.KindPullRequest, Number: 3, OnPullRequest: true},
		},
		{
			name: "actions issue comment",
			env:  map[string]string{"GITHUB_REPOSITORY": "acme/docs", "ISSUE_NUMBER": "12", "COMMENT_ID": "555", "GITHUB_EVENT_NAME": "issue_comment"},
			want: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", RepoFullName: "acme/docs", Kind: core.KindComment, Number: 12, CommentID: 555},
		},
		{
			name: "actions pull request without event name",
			env:  map[string]string{"GITHUB_REPOSITORY": "acme/docs", "PR_NUMBER": "4"},
			want: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", RepoFullName: "acme/docs", Kind: core.KindPullRequest, Number: 4, OnPullRequest: true},
		},
		{
			name:   "origin remote fallback",
			opts:   translateOptions{number: 1},
			origin: func() (string, string, error) { return "octo", "site", nil },
			want:   &core.TranslationEvent{RepoOwner: "octo", RepoName: "site", RepoFullName: "octo/site", Kind: core.KindIssue, Number: 1},
		},
		{name: "no repository", opts: translateOptions{number: 1}, wantErr: true},
		{name: "bad repository", opts: translateOptions{repo: "acme", number: 1}, wantErr: true},
		{name: "missing number", opts: translateOptions{repo: "acme/docs"}, wantErr: true},
		{name: "bad number env", env: map[string]string{"GITHUB_REPOSITORY": "acme/docs", "ISSUE_NUMBER": "x"}, wantErr: true},
		{name: "comment kind without id", opts: translateOptions{repo: "acme/docs", number: 1, kind: "comment"}, wantErr: true},
		{name: "unknown kind", opts: translateOptions{repo: "acme/docs", number: 1, kind: "wiki"}, wantErr: true},
		{name: "bad url", opts: translateOptions{url: "https://example.com/x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := tt.origin
			if origin == nil {
				origin = noOrigin
			}
			got, err := resolveTarget(tt.opts, env(tt.env), origin)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintSummary(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	printSummary(&buf, docsync.Summary{
		Translated: []string{"README.md"},
		Failed:     []string{"docs/guide.md"},
	})

	out := buf.String()
	assert.Contains(t, out, "translated (1)")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "failed (1)")
	assert.NotContains(t, out, "skipped")
}

func TestOpenHistory_JSONRelativeToRepo(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Storage: config.StorageConfig{
		HistoryBackend: config.HistoryBackendJSON,
		HistoryPath:    ".translation_history.json",
	}}

	history, cleanup, err := openHistory(cfg, root, gitutil.NewClient(nil))
	defer cleanup()
	require.NoError(t, err)

	require.NoError(t, history.Put(t.Context(), "README.ja.md", core.TranslationRecord{Hash: "abc", SourceFile: "README.md"}))
	require.NoError(t, history.Flush(t.Context()))
	_, err = os.Stat(filepath.Join(root, ".translation_history.json"))
	assert.NoError(t, err)
}

func TestRepositoryName_WithoutGit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "handbook")
	require.NoError(t, os.Mkdir(root, 0o755))
	assert.Equal(t, "handbook", repositoryName(root, gitutil.NewClient(nil)))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown("# Title\n\nこんにちは", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "こんにちは")
}

func TestLacksGatingLabel(t *testing.T) {
	prLinks := &gh.PullRequestLinks{URL: gh.Ptr("https://api.github.com/repos/acme/docs/pulls/2")}
	tests := []struct {
		name   string
		entity *core.Entity
		gate   string
		setup  func(m *mocks.MockClient)
		want   bool
	}{
		{
			name:   "no gate",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 2, CommentID: 5},
			setup:  func(*mocks.MockClient) {},
		},
		{
			name:   "issue is never gated",
			entity: &core.Entity{Kind: core.KindIssue, Owner: "acme", Repo: "docs", Number: 1},
			gate:   "need translation",
			setup:  func(*mocks.MockClient) {},
		},
		{
			name:   "unlabelled pull request",
			entity: &core.Entity{Kind: core.KindPullRequest, Owner: "acme", Repo: "docs", Number: 2},
			gate:   "need translation",
			setup:  func(*mocks.MockClient) {},
			want:   true,
		},
		{
			name:   "comment on unlabelled pull request",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 2, CommentID: 5},
			gate:   "need translation",
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 2).Return(&gh.Issue{PullRequestLinks: prLinks}, nil)
			},
			want: true,
		},
		{
			name:   "comment on labelled pull request",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 2, CommentID: 5},
			gate:   "need translation",
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 2).Return(&gh.Issue{
					PullRequestLinks: prLinks,
					Labels:           []*gh.Label{{Name: gh.Ptr("Need Translation")}},
				}, nil)
			},
		},
		{
			name:   "comment on plain issue",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 1, CommentID: 5},
			gate:   "need translation",
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 1).Return(&gh.Issue{}, nil)
			},
		},
		{
			name:   "review comment on unlabelled pull request",
			entity: &core.Entity{Kind: core.KindReviewComment, Owner: "acme", Repo: "docs", Number: 2, CommentID: 6},
			gate:   "need translation",
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetPullRequest(gomock.Any(), "acme", "docs", 2).Return(&gh.PullRequest{}, nil)
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient(gomock.NewController(t))
			tt.setup(client)

			got, err := lacksGatingLabel(context.Background(), github.NewEntityStore(client), tt.entity, tt.gate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
