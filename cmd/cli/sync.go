package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/docsync"
)

type syncOptions struct {
	repoPath     string
	initialSetup bool
	files        []string
	deletedFiles []string
	commitHash   string
	changedIn    string
}

var syncOpts syncOptions

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Translate Markdown files into their sibling language files",
	Long: `Translate Markdown files of a working tree into sibling files such as
README.ja.md. Exactly one input mode is required.

Examples:
  bilingo-cli sync --initial-setup
  bilingo-cli sync --files README.md,docs/guide.md --commit-hash abc123
  bilingo-cli sync --deleted-files docs/old.md
  bilingo-cli sync --changed-in HEAD`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := syncOpts.validate(); err != nil {
			return err
		}
		toolkit, err := loadToolkit(cmd.Context())
		if err != nil {
			return err
		}
		sum, err := runSync(cmd.Context(), toolkit, syncOpts)
		printSummary(cmd.OutOrStdout(), sum)
		if err != nil {
			return err
		}
		if len(sum.Failed) > 0 {
			return fmt.Errorf("%d file(s) failed to translate", len(sum.Failed))
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	f := syncCmd.Flags()
	f.StringVar(&syncOpts.repoPath, "repo-path", ".", "Path to the repository checkout")
	f.BoolVar(&syncOpts.initialSetup, "initial-setup", false, "Translate every Markdown file in the repository")
	f.StringSliceVar(&syncOpts.files, "files", nil, "Comma separated list of changed Markdown files")
	f.StringSliceVar(&syncOpts.deletedFiles, "deleted-files", nil, "Comma separated list of deleted Markdown files")
	f.StringVar(&syncOpts.commitHash, "commit-hash", "", "Commit recorded in the translation history (default HEAD)")
	f.StringVar(&syncOpts.changedIn, "changed-in", "", "Sync the files touched by this commit, e.g. HEAD")
	rootCmd.AddCommand(syncCmd)
}

func (o syncOptions) validate() error {
	modes := 0
	if o.initialSetup {
		modes++
	}
	if len(o.files) > 0 || len(o.deletedFiles) > 0 {
		modes++
	}
	if o.changedIn != "" {
		modes++
	}
	switch {
	case modes == 0:
		return errors.New("nothing to do: pass --initial-setup, --files/--deleted-files or --changed-in")
	case modes > 1:
		return errors.New("--initial-setup, --files/--deleted-files and --changed-in are mutually exclusive")
	}
	if o.repoPath == "" {
		return errors.New("--repo-path must not be empty")
	}
	return nil
}

func runSync(ctx context.Context, toolkit *app.Toolkit, opts syncOptions) (docsync.Summary, error) {
	cfg, logger := toolkit.Config, toolkit.Logger

	repoCfg, err := config.LoadRepoConfig(opts.repoPath)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
	case err != nil:
		logger.Warn("failed to load repo config, using defaults", "error", err)
		repoCfg = core.DefaultRepoConfig()
	}

	history, cleanup, err := openHistory(cfg, opts.repoPath, toolkit.Git)
	defer cleanup()
	if err != nil {
		return docsync.Summary{}, err
	}

	driver := toolkit.DriverWithInstructions(repoCfg.CustomInstructions)
	syncer, err := docsync.NewSyncer(opts.repoPath, toolkit.Git, driver, history, cfg.Translation.Languages(), repoCfg, logger)
	if err != nil {
		return docsync.Summary{}, err
	}
	syncer.WithCommit(opts.commitHash)

	if opts.initialSetup {
		return syncer.InitialSetup(ctx)
	}

	files, deleted := opts.files, opts.deletedFiles
	if opts.changedIn != "" {
		files, deleted, err = changedFiles(toolkit, opts.repoPath, opts.changedIn, logger)
		if err != nil {
			return docsync.Summary{}, err
		}
	}

	var sum docsync.Summary
	if len(deleted) > 0 {
		removed, err := syncer.DeleteFiles(ctx, deleted)
		sum.Add(removed)
		if err != nil {
			return sum, err
		}
	}
	if len(files) > 0 {
		synced, err := syncer.SyncFiles(ctx, files)
		sum.Add(synced)
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// changedFiles resolves the files touched by revision. Added and modified
// files are synced, deleted ones lose their translations.
func changedFiles(toolkit *app.Toolkit, repoPath, revision string, logger *slog.Logger) ([]string, []string, error) {
	repo, err := toolkit.Git.Open(repoPath)
	if err != nil {
		return nil, nil, fmt.Errorf("--changed-in requires a git repository: %w", err)
	}
	added, modified, deleted, err := toolkit.Git.ChangedFiles(repo, revision)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list files changed in %s: %w", revision, err)
	}
	logger.Info("resolved changed files", "revision", revision,
		"added", len(added), "modified", len(modified), "deleted", len(deleted))
	return markdownOnly(append(added, modified...)), markdownOnly(deleted), nil
}

func markdownOnly(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if strings.EqualFold(path.Ext(f), ".md") {
			out = append(out, f)
		}
	}
	return out
}
