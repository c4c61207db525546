package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/bilingo/internal/gitutil"
)

var (
	outputJSON     bool
	statusRepoPath string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the translation history of the repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		history, cleanup, err := openHistory(cfg, statusRepoPath, gitutil.NewClient(slog.Default()))
		defer cleanup()
		if err != nil {
			return err
		}

		entries, err := history.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list translation history: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		if len(entries) == 0 {
			slog.Info("no translated files recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TRANSLATED FILE\tSOURCE\tCOMMIT\tHASH\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.Path,
				e.SourceFile,
				short(e.Commit),
				short(e.Hash),
				e.Timestamp.Format(time.RFC822),
			)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	statusCmd.Flags().BoolVar(&outputJSON, "json", false, "Output status as JSON")
	statusCmd.Flags().StringVar(&statusRepoPath, "repo-path", ".", "Path to the repository checkout")
	rootCmd.AddCommand(statusCmd)
}

func short(s string) string {
	if len(s) > 7 {
		return s[:7]
	}
	return s
}
