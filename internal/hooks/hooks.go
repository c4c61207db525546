// Package hooks installs the Git hook that keeps translated documents in
// sync after every commit.
package hooks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// marker identifies hooks written by Install.
const marker = "# bilingo post-commit hook"

// ErrHookExists is returned when a foreign post-commit hook is present.
var ErrHookExists = errors.New("a post-commit hook already exists")

var postCommit = template.Must(template.New("post-commit").Parse(`#!/bin/sh
` + marker + `
# Translates the Markdown files changed by the last commit.
root="$(git rev-parse --show-toplevel)" || exit 0
{{ .Binary }} sync --repo-path "$root" --changed-in HEAD{{ range .Args }} {{ . }}{{ end }} || \
	echo "bilingo: translation sync failed" >&2
exit 0
`))

// Options configure the generated hook.
type Options struct {
	// Binary is the command the hook runs, bilingo-cli by default.
	Binary string
	// Args are appended to the sync command line.
	Args []string
	// Force replaces a hook not written by bilingo.
	Force bool
}

// InstallPostCommit writes .git/hooks/post-commit for the repository at
// repoPath and returns the hook path.
func InstallPostCommit(repoPath string, opts Options) (string, error) {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s is not the root of a git repository", repoPath)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	hookPath := filepath.Join(hooksDir, "post-commit")

	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), marker) && !opts.Force {
			return "", fmt.Errorf("%w at %s; use --force to replace it", ErrHookExists, hookPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read existing hook: %w", err)
	}

	script, err := Render(opts)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(hookPath, []byte(script), 0o775); err != nil {
		return "", fmt.Errorf("failed to write hook: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(hookPath, 0o775); err != nil {
		return "", fmt.Errorf("failed to make hook executable: %w", err)
	}
	return hookPath, nil
}

// Render returns the hook script for opts.
func Render(opts Options) (string, error) {
	if opts.Binary == "" {
		opts.Binary = "bilingo-cli"
	}
	var buf bytes.Buffer
	if err := postCommit.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("failed to render hook: %w", err)
	}
	return buf.String(), nil
}
