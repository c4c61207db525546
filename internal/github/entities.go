package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/bilingo/internal/core"
)

// EntityStore loads translatable entities from GitHub and writes their
// bodies back.
type EntityStore struct {
	client Client
}

// NewEntityStore wraps a Client.
func NewEntityStore(client Client) *EntityStore {
	return &EntityStore{client: client}
}

// Load fetches the entity an event refers to.
func (s *EntityStore) Load(ctx context.Context, ev *core.TranslationEvent) (*core.Entity, error) {
	entity := &core.Entity{
		Kind:         ev.Kind,
		Owner:        ev.RepoOwner,
		Repo:         ev.RepoName,
		Number:       ev.Number,
		CommentID:    ev.CommentID,
		PreviousBody: ev.PreviousBody,
	}

	switch ev.Kind {
	case core.KindIssue:
		issue, err := s.client.GetIssue(ctx, ev.RepoOwner, ev.RepoName, ev.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to get issue %d: %w", ev.Number, err)
		}
		entity.Title = issue.GetTitle()
		entity.Body = issue.GetBody()
		entity.Labels = labelNames(issue.Labels)
		entity.CreatedAt = issue.GetCreatedAt().Time
		entity.UpdatedAt = issue.GetUpdatedAt().Time
	case core.KindPullRequest:
		pr, err := s.client.GetPullRequest(ctx, ev.RepoOwner, ev.RepoName, ev.Number)
		if err != nil {
			return nil, fmt.Errorf("failed to get pull request %d: %w", ev.Number, err)
		}
		entity.Title = pr.GetTitle()
		entity.Body = pr.GetBody()
		entity.Labels = labelNames(pr.Labels)
		entity.CreatedAt = pr.GetCreatedAt().Time
		entity.UpdatedAt = pr.GetUpdatedAt().Time
	case core.KindComment:
		comment, err := s.client.GetIssueComment(ctx, ev.RepoOwner, ev.RepoName, ev.CommentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comment %d: %w", ev.CommentID, err)
		}
		fillFromIssueComment(entity, comment)
		entity.Labels = ev.Labels
	case core.KindReviewComment:
		comment, err := s.client.GetReviewComment(ctx, ev.RepoOwner, ev.RepoName, ev.CommentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get review comment %d: %w", ev.CommentID, err)
		}
		fillFromReviewComment(entity, comment)
		entity.Labels = ev.Labels
	default:
		return nil, fmt.Errorf("cannot load entity of kind %q", ev.Kind)
	}
	return entity, nil
}

// PullRequestComments returns the conversation and review comments of a pull
// request as entities.
func (s *EntityStore) PullRequestComments(ctx context.Context, owner, repo string, number int) ([]*core.Entity, error) {
	issueComments, err := s.client.ListIssueComments(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of pull request %d: %w", number, err)
	}
	reviewComments, err := s.client.ListReviewComments(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to list review comments of pull request %d: %w", number, err)
	}

	entities := make([]*core.Entity, 0, len(issueComments)+len(reviewComments))
	for _, c := range issueComments {
		e := &core.Entity{Kind: core.KindComment, Owner: owner, Repo: repo, Number: number}
		fillFromIssueComment(e, c)
		entities = append(entities, e)
	}
	for _, c := range reviewComments {
		e := &core.Entity{Kind: core.KindReviewComment, Owner: owner, Repo: repo, Number: number}
		fillFromReviewComment(e, c)
		entities = append(entities, e)
	}
	return entities, nil
}

// EditBody implements reconcile.BodyEditor.
func (s *EntityStore) EditBody(ctx context.Context, entity *core.Entity, body string) error {
	switch entity.Kind {
	case core.KindIssue:
		return s.client.EditIssueBody(ctx, entity.Owner, entity.Repo, entity.Number, body)
	case core.KindPullRequest:
		return s.client.EditPullRequestBody(ctx, entity.Owner, entity.Repo, entity.Number, body)
	case core.KindComment:
		return s.client.EditIssueComment(ctx, entity.Owner, entity.Repo, entity.CommentID, body)
	case core.KindReviewComment:
		return s.client.EditReviewComment(ctx, entity.Owner, entity.Repo, entity.CommentID, body)
	default:
		return fmt.Errorf("cannot edit entity of kind %q", entity.Kind)
	}
}

// ParentLabels returns the labels of the issue or pull request an entity
// belongs to, and whether that parent is a pull request.
func (s *EntityStore) ParentLabels(ctx context.Context, entity *core.Entity) ([]string, bool, error) {
	switch entity.Kind {
	case core.KindIssue:
		return entity.Labels, false, nil
	case core.KindPullRequest:
		return entity.Labels, true, nil
	case core.KindComment:
		issue, err := s.client.GetIssue(ctx, entity.Owner, entity.Repo, entity.Number)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get parent of %s: %w", entity.Key(), err)
		}
		return labelNames(issue.Labels), issue.IsPullRequest(), nil
	case core.KindReviewComment:
		pr, err := s.client.GetPullRequest(ctx, entity.Owner, entity.Repo, entity.Number)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get parent of %s: %w", entity.Key(), err)
		}
		return labelNames(pr.Labels), true, nil
	default:
		return nil, false, fmt.Errorf("entity of kind %q has no parent", entity.Kind)
	}
}

// EnsureLabel adds label to the issue or pull request the entity belongs to
// unless it is already present. It reports whether the label was added.
func (s *EntityStore) EnsureLabel(ctx context.Context, entity *core.Entity, label string) (bool, error) {
	labels, err := s.client.ListLabels(ctx, entity.Owner, entity.Repo, entity.Number)
	if err != nil {
		return false, fmt.Errorf("failed to list labels of %s: %w", entity.Key(), err)
	}
	current := core.Entity{Labels: labels}
	if current.HasLabel(label) {
		return false, nil
	}
	if err := s.client.AddLabel(ctx, entity.Owner, entity.Repo, entity.Number, label); err != nil {
		return false, fmt.Errorf("failed to add label %q to %s: %w", label, entity.Key(), err)
	}
	entity.Labels = append(entity.Labels, label)
	return true, nil
}

func fillFromIssueComment(e *core.Entity, c *github.IssueComment) {
	e.CommentID = c.GetID()
	e.Body = c.GetBody()
	e.CreatedAt = c.GetCreatedAt().Time
	e.UpdatedAt = c.GetUpdatedAt().Time
}

func fillFromReviewComment(e *core.Entity, c *github.PullRequestComment) {
	e.CommentID = c.GetID()
	e.Body = c.GetBody()
	e.CreatedAt = c.GetCreatedAt().Time
	e.UpdatedAt = c.GetUpdatedAt().Time
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}
