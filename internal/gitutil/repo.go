// Package gitutil reads file history from a local Git repository.
package gitutil

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ErrNotFound is returned when a file or revision does not exist.
var ErrNotFound = errors.New("not found in repository")

// Client handles interacting with Git repositories.
type Client struct {
	Logger *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{Logger: logger}
}

// Open opens the Git repository containing path.
func (c *Client) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}

// HeadSHA returns the commit HEAD points to.
func (c *Client) HeadSHA(repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// FileAtRevision returns the content of path (slash separated, relative to
// the repository root) at revision, which may be a SHA or an expression such
// as HEAD~1.
func (c *Client) FileAtRevision(repo *git.Repository, revision, path string) (string, error) {
	commit, err := c.commit(repo, revision)
	if err != nil {
		return "", err
	}
	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%s at %s: %w", path, revision, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read %s at %s: %w", path, revision, err)
	}
	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, revision, err)
	}
	return content, nil
}

// PreviousVersion returns the content of path at the recorded revision, or
// at the parent of HEAD when no revision was recorded. A missing version is
// reported through the boolean; it is expected for new files and first commits.
func (c *Client) PreviousVersion(repo *git.Repository, path, recorded string) (string, string, bool) {
	revision := recorded
	if revision == "" {
		revision = "HEAD~1"
	}
	content, err := c.FileAtRevision(repo, revision, path)
	if err != nil {
		c.Logger.Debug("previous version unavailable", "file", path, "revision", revision, "error", err)
		return "", "", false
	}
	return content, revision, true
}

// ChangedFiles lists the files touched by a commit relative to its first
// parent. A root commit reports all its files as added.
func (c *Client) ChangedFiles(repo *git.Repository, revision string) (added, modified, deleted []string, err error) {
	commit, err := c.commit(repo, revision)
	if err != nil {
		return nil, nil, nil, err
	}
	newTree, err := commit.Tree()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tree for commit %s: %w", revision, err)
	}

	oldTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get parent of %s: %w", revision, err)
		}
		if oldTree, err = parent.Tree(); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to get tree for parent of %s: %w", revision, err)
		}
	}
	return c.diffTrees(oldTree, newTree)
}

// Diff calculates the difference between two SHAs in an open repository.
func (c *Client) Diff(repo *git.Repository, oldSHA, newSHA string) (added, modified, deleted []string, err error) {
	oldCommit, err := c.commit(repo, oldSHA)
	if err != nil {
		return nil, nil, nil, err
	}
	newCommit, err := c.commit(repo, newSHA)
	if err != nil {
		return nil, nil, nil, err
	}

	oldTree, err := oldCommit.Tree()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tree for old commit %s: %w", oldSHA, err)
	}
	newTree, err := newCommit.Tree()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get tree for new commit %s: %w", newSHA, err)
	}
	return c.diffTrees(oldTree, newTree)
}

func (c *Client) diffTrees(oldTree, newTree *object.Tree) (added, modified, deleted []string, err error) {
	changes, err := object.DiffTree(oldTree, newTree)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			c.Logger.Error("failed to get action for change, skipping", "error", err)
			continue
		}

		switch action {
		case merkletrie.Insert:
			added = append(added, change.To.Name)
		case merkletrie.Modify:
			modified = append(modified, change.To.Name)
		case merkletrie.Delete:
			deleted = append(deleted, change.From.Name)
		}
	}
	sort.Strings(added)
	sort.Strings(modified)
	sort.Strings(deleted)
	return added, modified, deleted, nil
}

func (c *Client) commit(repo *git.Repository, revision string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("revision %s: %w", revision, ErrNotFound)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for %s: %w", revision, err)
	}
	return commit, nil
}

// OriginRepository returns owner and name of the GitHub "origin" remote.
func (c *Client) OriginRepository(repo *git.Repository) (string, string, error) {
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to read origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	return ParseRemoteURL(urls[0])
}
