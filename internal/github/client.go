// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// Client defines the set of GitHub operations needed to translate issues,
// pull requests and their comments.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	EditIssueBody(ctx context.Context, owner, repo string, number int, body string) error
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	EditPullRequestBody(ctx context.Context, owner, repo string, number int, body string) error
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error)
	GetIssueComment(ctx context.Context, owner, repo string, commentID int64) (*github.IssueComment, error)
	EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error
	ListReviewComments(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestComment, error)
	GetReviewComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, error)
	EditReviewComment(ctx context.Context, owner, repo string, commentID int64, body string) error
	ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error)
	AddLabel(ctx context.Context, owner, repo string, number int, label string) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// This is what the CLI and GitHub Actions runs use.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return &gitHubClient{client: client, logger: logger}
}

// GetIssue retrieves a single issue by its number.
func (g *gitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := g.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get issue", "owner", owner, "repo", repo, "issue", number, "error", err)
		return nil, err
	}
	return issue, nil
}

// EditIssueBody replaces the body of an issue.
func (g *gitHubClient) EditIssueBody(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := g.client.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{Body: &body})
	if err != nil {
		g.logger.Error("failed to edit issue", "owner", owner, "repo", repo, "issue", number, "error", err)
	}
	return err
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// EditPullRequestBody replaces the description of a pull request.
func (g *gitHubClient) EditPullRequestBody(ctx context.Context, owner, repo string, number int, body string) error {
	_, _, err := g.client.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{Body: &body})
	if err != nil {
		g.logger.Error("failed to edit pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
	}
	return err
}

// ListIssueComments retrieves every comment of an issue or pull request
// conversation, following pagination.
func (g *gitHubClient) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*github.IssueComment, error) {
	var all []*github.IssueComment
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}

	for {
		comments, resp, err := g.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list issue comments", "owner", owner, "repo", repo, "issue", number, "error", err)
			return nil, err
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// GetIssueComment retrieves a single issue comment.
func (g *gitHubClient) GetIssueComment(ctx context.Context, owner, repo string, commentID int64) (*github.IssueComment, error) {
	comment, _, err := g.client.Issues.GetComment(ctx, owner, repo, commentID)
	if err != nil {
		g.logger.Error("failed to get issue comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
		return nil, err
	}
	return comment, nil
}

// EditIssueComment replaces the body of an issue comment.
func (g *gitHubClient) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := g.client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	if err != nil {
		g.logger.Error("failed to edit issue comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
	}
	return err
}

// ListReviewComments retrieves every review comment of a pull request,
// following pagination.
func (g *gitHubClient) ListReviewComments(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestComment, error) {
	var all []*github.PullRequestComment
	opts := &github.PullRequestListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}

	for {
		comments, resp, err := g.client.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list review comments", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}
		all = append(all, comments...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// GetReviewComment retrieves a single pull request review comment.
func (g *gitHubClient) GetReviewComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, error) {
	comment, _, err := g.client.PullRequests.GetComment(ctx, owner, repo, commentID)
	if err != nil {
		g.logger.Error("failed to get review comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
		return nil, err
	}
	return comment, nil
}

// EditReviewComment replaces the body of a pull request review comment.
func (g *gitHubClient) EditReviewComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := g.client.PullRequests.EditComment(ctx, owner, repo, commentID, &github.PullRequestComment{Body: &body})
	if err != nil {
		g.logger.Error("failed to edit review comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
	}
	return err
}

// ListLabels returns the label names of an issue or pull request.
func (g *gitHubClient) ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: 100}

	for {
		labels, resp, err := g.client.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list labels", "owner", owner, "repo", repo, "issue", number, "error", err)
			return nil, err
		}
		for _, l := range labels {
			names = append(names, l.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// AddLabel attaches a label to an issue or pull request.
func (g *gitHubClient) AddLabel(ctx context.Context, owner, repo string, number int, label string) error {
	_, _, err := g.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, []string{label})
	if err != nil {
		g.logger.Error("failed to add label", "owner", owner, "repo", repo, "issue", number, "label", label, "error", err)
	}
	return err
}
