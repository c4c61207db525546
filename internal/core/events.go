// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"errors"
	"fmt"

	"github.com/google/go-github/v73/github"
)

// ErrIgnoredEvent is returned by the event constructors for payloads that are
// valid but require no translation work.
var ErrIgnoredEvent = errors.New("event ignored")

// TranslationEvent represents a simplified, internal view of a GitHub webhook
// event that may require a translation pass.
type TranslationEvent struct {
	// Repository details
	RepoOwner    string
	RepoName     string
	RepoFullName string

	Kind      EntityKind
	Action    string
	Number    int
	CommentID int64
	// Labels on the issue or pull request the event belongs to.
	Labels []string
	// OnPullRequest is set when the entity is a pull request or one of its comments.
	OnPullRequest bool
	// LabelAdded is the label name for "labeled" actions.
	LabelAdded string
	// PreviousBody is the body before an "edited" action, when GitHub sent it.
	PreviousBody string

	Sender         string
	InstallationID int64
}

// Key identifies the entity the event targets.
func (e *TranslationEvent) Key() string {
	ent := Entity{Kind: e.Kind, Owner: e.RepoOwner, Repo: e.RepoName, Number: e.Number, CommentID: e.CommentID}
	return ent.Key()
}

type repoGetter interface {
	GetRepo() *github.Repository
	GetInstallation() *github.Installation
	GetSender() *github.User
}

// newEvent validates the fields every supported payload shares.
func newEvent(raw repoGetter, action string) (*TranslationEvent, error) {
	repo := raw.GetRepo()
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}
	if raw.GetInstallation() == nil || raw.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}
	sender := raw.GetSender()
	if sender.GetType() == "Bot" {
		return nil, fmt.Errorf("%w: sender %s is a bot", ErrIgnoredEvent, sender.GetLogin())
	}
	return &TranslationEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		Action:         action,
		Sender:         sender.GetLogin(),
		InstallationID: raw.GetInstallation().GetID(),
	}, nil
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.GetName())
	}
	return names
}

// EventFromIssues transforms an IssuesEvent into a TranslationEvent. Only
// opened and edited issues are translated; pull requests delivered through
// the issues API are left to EventFromPullRequest.
func EventFromIssues(event *github.IssuesEvent) (*TranslationEvent, error) {
	switch event.GetAction() {
	case "opened", "edited":
	default:
		return nil, fmt.Errorf("%w: issues action %q", ErrIgnoredEvent, event.GetAction())
	}
	if event.GetIssue().IsPullRequest() {
		return nil, fmt.Errorf("%w: issue is a pull request", ErrIgnoredEvent)
	}

	ev, err := newEvent(event, event.GetAction())
	if err != nil {
		return nil, err
	}
	if event.GetIssue().GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid issue number: %d", event.GetIssue().GetNumber())
	}
	ev.Kind = KindIssue
	ev.Number = event.GetIssue().GetNumber()
	ev.Labels = labelNames(event.GetIssue().Labels)
	ev.PreviousBody = event.GetChanges().GetBody().GetFrom()
	return ev, nil
}

// EventFromIssueComment transforms an IssueCommentEvent into a TranslationEvent.
// Comments on both issues and pull requests are accepted.
func EventFromIssueComment(event *github.IssueCommentEvent) (*TranslationEvent, error) {
	switch event.GetAction() {
	case "created", "edited":
	default:
		return nil, fmt.Errorf("%w: issue_comment action %q", ErrIgnoredEvent, event.GetAction())
	}

	ev, err := newEvent(event, event.GetAction())
	if err != nil {
		return nil, err
	}
	if event.GetIssue().GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid issue number: %d", event.GetIssue().GetNumber())
	}
	if event.GetComment().GetID() == 0 {
		return nil, fmt.Errorf("comment ID is missing from the event")
	}
	ev.Kind = KindComment
	ev.Number = event.GetIssue().GetNumber()
	ev.OnPullRequest = event.GetIssue().IsPullRequest()
	ev.CommentID = event.GetComment().GetID()
	ev.Labels = labelNames(event.GetIssue().Labels)
	ev.PreviousBody = event.GetChanges().GetBody().GetFrom()
	return ev, nil
}

// EventFromPullRequest transforms a PullRequestEvent into a TranslationEvent.
func EventFromPullRequest(event *github.PullRequestEvent) (*TranslationEvent, error) {
	switch event.GetAction() {
	case "opened", "edited", "reopened", "labeled":
	default:
		return nil, fmt.Errorf("%w: pull_request action %q", ErrIgnoredEvent, event.GetAction())
	}

	ev, err := newEvent(event, event.GetAction())
	if err != nil {
		return nil, err
	}
	if event.GetNumber() <= 0 && event.GetPullRequest().GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", event.GetNumber())
	}
	ev.Kind = KindPullRequest
	ev.OnPullRequest = true
	ev.Number = event.GetPullRequest().GetNumber()
	if ev.Number == 0 {
		ev.Number = event.GetNumber()
	}
	ev.Labels = labelNames(event.GetPullRequest().Labels)
	ev.LabelAdded = event.GetLabel().GetName()
	ev.PreviousBody = event.GetChanges().GetBody().GetFrom()
	return ev, nil
}

// EventFromPullRequestReviewComment transforms a review comment event into a
// TranslationEvent.
func EventFromPullRequestReviewComment(event *github.PullRequestReviewCommentEvent) (*TranslationEvent, error) {
	switch event.GetAction() {
	case "created", "edited":
	default:
		return nil, fmt.Errorf("%w: review comment action %q", ErrIgnoredEvent, event.GetAction())
	}

	ev, err := newEvent(event, event.GetAction())
	if err != nil {
		return nil, err
	}
	if event.GetComment().GetID() == 0 {
		return nil, fmt.Errorf("comment ID is missing from the event")
	}
	ev.Kind = KindReviewComment
	ev.OnPullRequest = true
	ev.Number = event.GetPullRequest().GetNumber()
	ev.CommentID = event.GetComment().GetID()
	ev.Labels = labelNames(event.GetPullRequest().Labels)
	ev.PreviousBody = event.GetChanges().GetBody().GetFrom()
	return ev, nil
}
