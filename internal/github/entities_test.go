package github

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/mocks"
)

func TestEntityStore_Load(t *testing.T) {
	tests := []struct {
		name     string
		event    *core.TranslationEvent
		setup    func(m *mocks.MockClient)
		wantBody string
		wantErr  bool
	}{
		{
			name:  "issue",
			event: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindIssue, Number: 3, PreviousBody: "old"},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 3).Return(&github.Issue{
					Title:  github.Ptr("Bug"),
					Body:   github.Ptr("It breaks"),
					Labels: []*github.Label{{Name: github.Ptr("bug")}},
				}, nil)
			},
			wantBody: "It breaks",
		},
		{
			name:  "pull request",
			event: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindPullRequest, Number: 4},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetPullRequest(gomock.Any(), "acme", "docs", 4).Return(&github.PullRequest{Body: github.Ptr("Adds docs")}, nil)
			},
			wantBody: "Adds docs",
		},
		{
			name:  "issue comment",
			event: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindComment, Number: 3, CommentID: 99},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssueComment(gomock.Any(), "acme", "docs", int64(99)).Return(&github.IssueComment{ID: github.Ptr(int64(99)), Body: github.Ptr("LGTM")}, nil)
			},
			wantBody: "LGTM",
		},
		{
			name:  "review comment",
			event: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindReviewComment, Number: 4, CommentID: 5},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetReviewComment(gomock.Any(), "acme", "docs", int64(5)).Return(&github.PullRequestComment{ID: github.Ptr(int64(5)), Body: github.Ptr("nit")}, nil)
			},
			wantBody: "nit",
		},
		{
			name:  "api failure",
			event: &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindIssue, Number: 3},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 3).Return(nil, errors.New("404"))
			},
			wantErr: true,
		},
		{
			name:    "unsupported kind",
			event:   &core.TranslationEvent{RepoOwner: "acme", RepoName: "docs", Kind: core.KindDocumentFile},
			setup:   func(*mocks.MockClient) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			entity, err := NewEntityStore(client).Load(context.Background(), tt.event)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, entity.Body)
			assert.Equal(t, tt.event.Kind, entity.Kind)
			assert.Equal(t, tt.event.PreviousBody, entity.PreviousBody)
			assert.Equal(t, tt.event.Key(), entity.Key())
		})
	}
}

func TestEntityStore_EditBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := NewEntityStore(client)
	ctx := context.Background()

	client.EXPECT().EditIssueBody(ctx, "acme", "docs", 1, "a").Return(nil)
	client.EXPECT().EditPullRequestBody(ctx, "acme", "docs", 2, "b").Return(nil)
	client.EXPECT().EditIssueComment(ctx, "acme", "docs", int64(30), "c").Return(nil)
	client.EXPECT().EditReviewComment(ctx, "acme", "docs", int64(40), "d").Return(nil)

	require.NoError(t, store.EditBody(ctx, &core.Entity{Kind: core.KindIssue, Owner: "acme", Repo: "docs", Number: 1}, "a"))
	require.NoError(t, store.EditBody(ctx, &core.Entity{Kind: core.KindPullRequest, Owner: "acme", Repo: "docs", Number: 2}, "b"))
	require.NoError(t, store.EditBody(ctx, &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 1, CommentID: 30}, "c"))
	require.NoError(t, store.EditBody(ctx, &core.Entity{Kind: core.KindReviewComment, Owner: "acme", Repo: "docs", Number: 2, CommentID: 40}, "d"))
	assert.Error(t, store.EditBody(ctx, &core.Entity{Kind: core.KindDocumentFile}, "e"))
}

func TestEntityStore_EnsureLabel(t *testing.T) {
	entity := &core.Entity{Kind: core.KindIssue, Owner: "acme", Repo: "docs", Number: 8}

	t.Run("adds missing label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().ListLabels(gomock.Any(), "acme", "docs", 8).Return([]string{"bug"}, nil)
		client.EXPECT().AddLabel(gomock.Any(), "acme", "docs", 8, "translated").Return(nil)

		added, err := NewEntityStore(client).EnsureLabel(context.Background(), entity, "translated")
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("keeps existing label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().ListLabels(gomock.Any(), "acme", "docs", 8).Return([]string{"Translated"}, nil)

		added, err := NewEntityStore(client).EnsureLabel(context.Background(), entity, "translated")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().ListLabels(gomock.Any(), "acme", "docs", 8).Return(nil, errors.New("boom"))

		_, err := NewEntityStore(client).EnsureLabel(context.Background(), entity, "translated")
		assert.Error(t, err)
	})
}

func TestEntityStore_PullRequestComments(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().ListIssueComments(gomock.Any(), "acme", "docs", 4).Return([]*github.IssueComment{
		{ID: github.Ptr(int64(1)), Body: github.Ptr("first")},
	}, nil)
	client.EXPECT().ListReviewComments(gomock.Any(), "acme", "docs", 4).Return([]*github.PullRequestComment{
		{ID: github.Ptr(int64(2)), Body: github.Ptr("second")},
	}, nil)

	entities, err := NewEntityStore(client).PullRequestComments(context.Background(), "acme", "docs", 4)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, core.KindComment, entities[0].Kind)
	assert.Equal(t, "acme/docs#4/c/1", entities[0].Key())
	assert.Equal(t, core.KindReviewComment, entities[1].Kind)
	assert.Equal(t, "second", entities[1].Body)
}

func TestEntityStore_ParentLabels(t *testing.T) {
	prLinks := &github.PullRequestLinks{URL: github.Ptr("https://api.github.com/repos/acme/docs/pulls/4")}
	tests := []struct {
		name       string
		entity     *core.Entity
		setup      func(m *mocks.MockClient)
		wantLabels []string
		wantOnPR   bool
		wantErr    bool
	}{
		{
			name:       "issue uses its own labels",
			entity:     &core.Entity{Kind: core.KindIssue, Owner: "acme", Repo: "docs", Number: 3, Labels: []string{"bug"}},
			setup:      func(*mocks.MockClient) {},
			wantLabels: []string{"bug"},
		},
		{
			name:       "pull request uses its own labels",
			entity:     &core.Entity{Kind: core.KindPullRequest, Owner: "acme", Repo: "docs", Number: 4, Labels: []string{"need translation"}},
			setup:      func(*mocks.MockClient) {},
			wantLabels: []string{"need translation"},
			wantOnPR:   true,
		},
		{
			name:   "comment on a pull request",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 4, CommentID: 9},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 4).Return(&github.Issue{
					PullRequestLinks: prLinks,
					Labels:           []*github.Label{{Name: github.Ptr("docs")}},
				}, nil)
			},
			wantLabels: []string{"docs"},
			wantOnPR:   true,
		},
		{
			name:   "comment on an issue",
			entity: &core.Entity{Kind: core.KindComment, Owner: "acme", Repo: "docs", Number: 3, CommentID: 9},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetIssue(gomock.Any(), "acme", "docs", 3).Return(&github.Issue{}, nil)
			},
			wantLabels: []string{},
		},
		{
			name:   "review comment",
			entity: &core.Entity{Kind: core.KindReviewComment, Owner: "acme", Repo: "docs", Number: 4, CommentID: 5},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetPullRequest(gomock.Any(), "acme", "docs", 4).Return(&github.PullRequest{
					Labels: []*github.Label{{Name: github.Ptr("need translation")}},
				}, nil)
			},
			wantLabels: []string{"need translation"},
			wantOnPR:   true,
		},
		{
			name:   "parent lookup failure",
			entity: &core.Entity{Kind: core.KindReviewComment, Owner: "acme", Repo: "docs", Number: 4, CommentID: 5},
			setup: func(m *mocks.MockClient) {
				m.EXPECT().GetPullRequest(gomock.Any(), "acme", "docs", 4).Return(nil, errors.New("404"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			labels, onPR, err := NewEntityStore(client).ParentLabels(context.Background(), tt.entity)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabels, labels)
			assert.Equal(t, tt.wantOnPR, onPR)
		})
	}
}
