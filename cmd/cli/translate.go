package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/github"
	"github.com/sevigo/bilingo/internal/gitutil"
	"github.com/sevigo/bilingo/internal/jobs"
)

type translateOptions struct {
	url       string
	repo      string
	number    int
	commentID int64
	kind      string
}

var translateOpts translateOptions

var translateCmd = &cobra.Command{
	Use:   "translate [url]",
	Short: "Translate a single issue, pull request or comment",
	Long: `Reconcile one GitHub issue, pull request or comment with a personal
access token. Inside GitHub Actions the target is taken from the workflow
environment (GITHUB_REPOSITORY, ISSUE_NUMBER, PR_NUMBER, COMMENT_ID,
GITHUB_EVENT_NAME) when flags are omitted.

Examples:
  bilingo-cli translate https://github.com/owner/repo/issues/12
  bilingo-cli translate --repo owner/repo --number 12 --kind pull_request
  bilingo-cli translate --number 12 --comment-id 345678 --kind comment`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := translateOpts
		if len(args) == 1 {
			opts.url = args[0]
		}
		ev, err := resolveTarget(opts, os.Getenv, originRepository)
		if err != nil {
			return err
		}

		toolkit, err := loadToolkit(cmd.Context())
		if err != nil {
			return err
		}
		updated, err := runTranslate(cmd.Context(), toolkit, ev)
		if err != nil {
			return err
		}
		if updated {
			_, _ = successColor.Fprintf(cmd.OutOrStdout(), "translated %s\n", ev.Key())
		} else {
			_, _ = dimColor.Fprintf(cmd.OutOrStdout(), "%s is already up to date\n", ev.Key())
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	f := translateCmd.Flags()
	f.StringVar(&translateOpts.url, "url", "", "Issue, pull request or comment URL")
	f.StringVar(&translateOpts.repo, "repo", "", "Repository as owner/name (default GITHUB_REPOSITORY or the origin remote)")
	f.IntVar(&translateOpts.number, "number", 0, "Issue or pull request number")
	f.Int64Var(&translateOpts.commentID, "comment-id", 0, "Comment ID for comment and review_comment kinds")
	f.StringVar(&translateOpts.kind, "kind", "", "issue, pull_request, comment or review_comment")
	rootCmd.AddCommand(translateCmd)
}

// resolveTarget builds the event to reconcile from flags, a URL, the GitHub
// Actions environment and finally the origin remote of the working directory.
func resolveTarget(opts translateOptions, getenv func(string) string, origin func() (string, string, error)) (*core.TranslationEvent, error) {
	if opts.url != "" {
		ref, err := gitutil.ParseEntityURL(opts.url)
		if err != nil {
			return nil, err
		}
		return &core.TranslationEvent{
			RepoOwner:    ref.Owner,
			RepoName:     ref.Repo,
			RepoFullName: ref.Owner + "/" + ref.Repo,
			Kind:         ref.Kind,
			Number:       ref.Number,
			CommentID:    ref.CommentID,
		}, nil
	}

	ev := &core.TranslationEvent{Number: opts.number, CommentID: opts.commentID}

	repo := opts.repo
	if repo == "" {
		repo = getenv("GITHUB_REPOSITORY")
	}
	if repo != "" {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" {
			return nil, fmt.Errorf("invalid repository %q, expected owner/name", repo)
		}
		ev.RepoOwner, ev.RepoName = owner, name
	} else {
		owner, name, err := origin()
		if err != nil {
			return nil, fmt.Errorf("no repository given and none could be derived from the origin remote: %w", err)
		}
		ev.RepoOwner, ev.RepoName = owner, name
	}
	ev.RepoFullName = ev.RepoOwner + "/" + ev.RepoName

	if ev.Number == 0 {
		for _, key := range []string{"ISSUE_NUMBER", "PR_NUMBER"} {
			if v := getenv(key); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("invalid %s %q: %w", key, v, err)
				}
				ev.Number = n
				break
			}
		}
	}
	if ev.Number <= 0 {
		return nil, errors.New("an issue or pull request number is required (--number, ISSUE_NUMBER or PR_NUMBER)")
	}

	if ev.CommentID == 0 {
		if v := getenv("COMMENT_ID"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid COMMENT_ID %q: %w", v, err)
			}
			ev.CommentID = id
		}
	}

	kind, err := resolveKind(opts.kind, getenv("GITHUB_EVENT_NAME"), getenv("PR_NUMBER") != "", ev.CommentID != 0)
	if err != nil {
		return nil, err
	}
	ev.Kind = kind
	if (kind == core.KindComment || kind == core.KindReviewComment) && ev.CommentID == 0 {
		return nil, fmt.Errorf("--comment-id is required for kind %s", kind)
	}
	ev.OnPullRequest = kind == core.KindPullRequest || kind == core.KindReviewComment
	return ev, nil
}

func resolveKind(flag, eventName string, isPR, hasComment bool) (core.EntityKind, error) {
	if flag != "" {
		return core.ParseEntityKind(flag)
	}
	switch eventName {
	case "issues":
		return core.KindIssue, nil
	case "issue_comment":
		return core.KindComment, nil
	case "pull_request", "pull_request_target":
		return core.KindPullRequest, nil
	case "pull_request_review_comment":
		return core.KindReviewComment, nil
	}
	switch {
	case hasComment:
		return core.KindComment, nil
	case isPR:
		return core.KindPullRequest, nil
	default:
		return core.KindIssue, nil
	}
}

func originRepository() (string, string, error) {
	gitClient := gitutil.NewClient(nil)
	repo, err := gitClient.Open(".")
	if err != nil {
		return "", "", err
	}
	return gitClient.OriginRepository(repo)
}

func runTranslate(ctx context.Context, toolkit *app.Toolkit, ev *core.TranslationEvent) (bool, error) {
	cfg, logger := toolkit.Config, toolkit.Logger

	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return false, errors.New("a GitHub token is required (--github-token, BILINGO_GITHUB_TOKEN or GITHUB_TOKEN)")
	}

	store := github.NewEntityStore(github.NewPATClient(ctx, token, logger))
	entity, err := store.Load(ctx, ev)
	if err != nil {
		return false, err
	}

	gate := cfg.Translation.RequireLabelForPRs
	skip, err := lacksGatingLabel(ctx, store, entity, gate)
	if err != nil {
		return false, err
	}
	if skip {
		logger.Info("pull request lacks the gating label, skipping", "entity", entity.Key(), "label", gate)
		return false, nil
	}

	reconciler := jobs.NewEntityReconciler(toolkit.Driver, cfg.Translation.Label, logger)
	return reconciler.Reconcile(ctx, store, entity)
}

// lacksGatingLabel reports whether entity belongs to a pull request that does
// not carry gate. Comments are judged by their parent.
func lacksGatingLabel(ctx context.Context, store *github.EntityStore, entity *core.Entity, gate string) (bool, error) {
	if gate == "" || entity.Kind == core.KindIssue {
		return false, nil
	}
	labels, onPR, err := store.ParentLabels(ctx, entity)
	if err != nil {
		return false, err
	}
	parent := core.Entity{Labels: labels}
	return onPR && !parent.HasLabel(gate), nil
}
