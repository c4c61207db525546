package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/sevigo/bilingo/internal/docsync"
)

var (
	previewLang  string
	previewWidth int
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Render the translated sibling of a Markdown file in the terminal",
	Long: `Render the translated sibling of a Markdown file, for example
README.ja.md for README.md, with terminal styling. Without --lang the file
itself is rendered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if previewLang != "" {
			path = docsync.TranslatedPath(path, previewLang)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		out, err := renderMarkdown(string(content), previewWidth)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	previewCmd.Flags().StringVar(&previewLang, "lang", "", "Language of the sibling to render, e.g. ja")
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "Word wrap width")
	rootCmd.AddCommand(previewCmd)
}

func renderMarkdown(content string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
