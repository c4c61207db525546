package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/bilingo/internal/hooks"
)

var (
	hookRepoPath string
	hookOpts     hooks.Options
)

var installHookCmd = &cobra.Command{
	Use:   "install-hook",
	Short: "Install a post-commit hook that syncs translations after each commit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := hooks.InstallPostCommit(hookRepoPath, hookOpts)
		if errors.Is(err, hooks.ErrHookExists) {
			return fmt.Errorf("%w; rerun with --force to replace it", err)
		}
		if err != nil {
			return err
		}
		_, _ = successColor.Fprintf(cmd.OutOrStdout(), "installed post-commit hook at %s\n", path)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	f := installHookCmd.Flags()
	f.StringVar(&hookRepoPath, "repo-path", ".", "Path to the repository checkout")
	f.StringVar(&hookOpts.Binary, "binary", "", "Command the hook runs (default bilingo-cli)")
	f.StringSliceVar(&hookOpts.Args, "sync-args", nil, "Extra arguments appended to the sync command")
	f.BoolVar(&hookOpts.Force, "force", false, "Replace an existing post-commit hook")
	rootCmd.AddCommand(installHookCmd)
}
