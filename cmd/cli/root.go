package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/wire"
)

var (
	cfgFile     string
	githubToken string
)

var rootCmd = &cobra.Command{
	Use:   "bilingo-cli",
	Short: "bilingo-cli keeps issues, pull requests and Markdown files bilingual.",
	Long: `A CLI for the bilingo translation bot. It translates Markdown files in a
working tree into sibling files, reconciles single GitHub issues, pull
requests and comments, and installs a post-commit hook for local use.`,
	SilenceUsage: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config.yaml (default ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token for the translate command (or BILINGO_GITHUB_TOKEN)")

	if err := viper.BindPFlag("github.token", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration selected by --config, the environment
// and bound flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadToolkit loads configuration and builds the translation pipeline.
func loadToolkit(ctx context.Context) (*app.Toolkit, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	toolkit, err := wire.InitializeToolkit(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize translation pipeline: %w", err)
	}
	return toolkit, nil
}
