package jobs

import (
	"fmt"

	"github.com/sevigo/bilingo/internal/core"
)

// validateEvent ensures the event contains all required fields.
func validateEvent(event *core.TranslationEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.RepoOwner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if event.RepoName == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if event.Number <= 0 {
		return fmt.Errorf("issue or pull request number must be positive, got: %d", event.Number)
	}
	if event.InstallationID <= 0 {
		return fmt.Errorf("installation ID must be positive, got: %d", event.InstallationID)
	}
	switch event.Kind {
	case core.KindIssue, core.KindPullRequest:
	case core.KindComment, core.KindReviewComment:
		if event.CommentID <= 0 {
			return fmt.Errorf("comment ID must be positive for %s events, got: %d", event.Kind, event.CommentID)
		}
	default:
		return fmt.Errorf("unsupported entity kind %q", event.Kind)
	}
	return nil
}
