package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/bilingo/internal/core"
)

var (
	entityURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/(issues|pull)/(\d+)(?:/files)?(?:#(issuecomment|discussion_r)-?(\d+))?$`)
	remoteURLRegex = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// EntityRef identifies an issue, pull request or comment by URL.
type EntityRef struct {
	Owner     string
	Repo      string
	Kind      core.EntityKind
	Number    int
	CommentID int64
}

// ParseEntityURL parses a GitHub issue, pull request or comment URL.
// Supported formats:
//
//	https://github.com/{owner}/{repo}/issues/{number}
//	https://github.com/{owner}/{repo}/pull/{number}
//	https://github.com/{owner}/{repo}/issues/{number}#issuecomment-{id}
//	https://github.com/{owner}/{repo}/pull/{number}#discussion_r{id}
func ParseEntityURL(url string) (EntityRef, error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	matches := entityURLRegex.FindStringSubmatch(url)
	if len(matches) != 7 {
		return EntityRef{}, fmt.Errorf("invalid issue or pull request URL format: %s", url)
	}

	number, err := strconv.Atoi(matches[4])
	if err != nil {
		return EntityRef{}, fmt.Errorf("invalid number '%s': %w", matches[4], err)
	}
	ref := EntityRef{Owner: matches[1], Repo: matches[2], Number: number, Kind: core.KindIssue}
	if matches[3] == "pull" {
		ref.Kind = core.KindPullRequest
	}

	if matches[5] != "" {
		id, err := strconv.ParseInt(matches[6], 10, 64)
		if err != nil {
			return EntityRef{}, fmt.Errorf("invalid comment id '%s': %w", matches[6], err)
		}
		ref.CommentID = id
		ref.Kind = core.KindComment
		if matches[5] == "discussion_r" {
			ref.Kind = core.KindReviewComment
		}
	}
	return ref, nil
}

// ParseRemoteURL extracts owner and repository from a GitHub remote in
// https or scp-like ssh form.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	matches := remoteURLRegex.FindStringSubmatch(strings.TrimSpace(url))
	if len(matches) != 3 {
		return "", "", fmt.Errorf("not a GitHub remote: %s", url)
	}
	return matches[1], matches[2], nil
}
