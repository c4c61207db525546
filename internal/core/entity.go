package core

import (
	"fmt"
	"time"
)

// EntityKind identifies which kind of repository content an Entity wraps.
type EntityKind string

const (
	KindIssue         EntityKind = "issue"
	KindPullRequest   EntityKind = "pull_request"
	KindComment       EntityKind = "comment"
	KindReviewComment EntityKind = "review_comment"
	KindDocumentFile  EntityKind = "document_file"
)

// ParseEntityKind maps a user-facing kind name onto an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindIssue, KindPullRequest, KindComment, KindReviewComment:
		return EntityKind(s), nil
	case "pr":
		return KindPullRequest, nil
	default:
		return "", fmt.Errorf("unsupported entity kind %q", s)
	}
}

// Entity is a single translatable body hosted on GitHub: an issue, a pull
// request, or one of their comments.
type Entity struct {
	Kind   EntityKind
	Owner  string
	Repo   string
	Number int // issue or pull request number; the parent number for comments
	// CommentID is set for comments and review comments only.
	CommentID int64

	Title string
	Body  string
	// PreviousBody is the body before the edit that triggered this pass. It is
	// empty when the host did not report it (new entities, CLI runs).
	PreviousBody string

	Labels    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns a stable identifier used for logging and per-entity locking.
func (e *Entity) Key() string {
	switch e.Kind {
	case KindComment:
		return fmt.Sprintf("%s/%s#%d/c/%d", e.Owner, e.Repo, e.Number, e.CommentID)
	case KindReviewComment:
		return fmt.Sprintf("%s/%s#%d/rc/%d", e.Owner, e.Repo, e.Number, e.CommentID)
	default:
		return fmt.Sprintf("%s/%s#%d", e.Owner, e.Repo, e.Number)
	}
}

// HasLabel reports whether the entity carries the label, ignoring case.
func (e *Entity) HasLabel(name string) bool {
	for _, l := range e.Labels {
		if equalFold(l, name) {
			return true
		}
	}
	return false
}

// Document is a Markdown file tracked in a repository working tree. Its
// translations live in sibling files (README.md -> README.ja.md).
type Document struct {
	Path    string // repository-relative, slash separated
	Content string

	// Previous is the content at the last translated revision, or at the
	// parent commit when no history exists.
	Previous    string
	HasPrevious bool
	Revision    string

	// Translations holds the current content of existing sibling files.
	Translations map[string]string
	// LastHashes holds the source hash recorded when each sibling was last written.
	LastHashes map[string]string
}
