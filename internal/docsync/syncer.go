// Package docsync keeps translated siblings of Markdown files in a working
// tree up to date: README.md is mirrored into README.ja.md and so on.
package docsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/gitutil"
	"github.com/sevigo/bilingo/internal/reconcile"
	"github.com/sevigo/bilingo/internal/storage"
)

// Summary reports the outcome of a sync run per source file.
type Summary struct {
	Translated []string
	UpToDate   []string
	Failed     []string
	Skipped    []string
	// Removed lists translated files deleted by DeleteFiles.
	Removed []string
}

// Add merges another summary into s.
func (s *Summary) Add(o Summary) {
	s.Translated = append(s.Translated, o.Translated...)
	s.UpToDate = append(s.UpToDate, o.UpToDate...)
	s.Failed = append(s.Failed, o.Failed...)
	s.Skipped = append(s.Skipped, o.Skipped...)
	s.Removed = append(s.Removed, o.Removed...)
}

// Syncer reconciles the documents of one repository checkout.
type Syncer struct {
	root      string
	git       *gitutil.Client
	repo      *git.Repository
	driver    *reconcile.Driver
	history   storage.HistoryStore
	languages []string
	repoCfg   *core.RepoConfig
	commit    string
	now       func() time.Time
	logger    *slog.Logger
}

// NewSyncer creates a Syncer for the checkout at root. A root that is not a
// Git repository is accepted; previous versions are then unavailable and
// every changed document is translated in full.
func NewSyncer(root string, gitClient *gitutil.Client, driver *reconcile.Driver, history storage.HistoryStore,
	languages []string, repoCfg *core.RepoConfig, logger *slog.Logger) (*Syncer, error) {
	if driver == nil {
		panic("driver cannot be nil")
	}
	if history == nil {
		panic("history store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if repoCfg == nil {
		repoCfg = core.DefaultRepoConfig()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository path %s: %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("repository path %s is not a directory", root)
	}

	s := &Syncer{
		root:      absRoot,
		git:       gitClient,
		driver:    driver,
		history:   history,
		languages: languages,
		repoCfg:   repoCfg,
		now:       time.Now,
		logger:    logger.With("repo_path", absRoot),
	}

	if gitClient != nil {
		repo, err := gitClient.Open(absRoot)
		if err != nil {
			s.logger.Warn("not a git repository, previous versions are unavailable", "error", err)
		} else {
			s.repo = repo
			if head, err := gitClient.HeadSHA(repo); err == nil {
				s.commit = head
			}
		}
	}
	return s, nil
}

// WithCommit sets the revision recorded in history entries. An empty value
// keeps the HEAD commit.
func (s *Syncer) WithCommit(commit string) *Syncer {
	if commit != "" {
		s.commit = commit
	}
	return s
}

// InitialSetup translates every source Markdown file in the repository.
func (s *Syncer) InitialSetup(ctx context.Context) (Summary, error) {
	files, err := s.Discover()
	if err != nil {
		return Summary{}, err
	}
	s.logger.Info("initial setup", "files", len(files))
	return s.SyncFiles(ctx, files)
}

// SyncFiles reconciles the given source files and saves the history once at
// the end. Files that are missing, excluded, not Markdown, or themselves
// translations are skipped.
func (s *Syncer) SyncFiles(ctx context.Context, files []string) (Summary, error) {
	var sum Summary
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Add(s.syncFile(ctx, f))
	}
	if err := s.history.Flush(ctx); err != nil {
		return sum, fmt.Errorf("failed to save translation history: %w", err)
	}
	return sum, nil
}

func (s *Syncer) syncFile(ctx context.Context, file string) Summary {
	rel, err := s.relative(file)
	if err != nil {
		s.logger.Warn("skipping file", "file", file, "error", err)
		return Summary{Skipped: []string{file}}
	}
	log := s.logger.With("file", rel)

	if !isMarkdown(rel) || s.isTranslation(rel) || s.isExcludedFile(rel) {
		log.Debug("not a source markdown file, skipping")
		return Summary{Skipped: []string{rel}}
	}

	doc, err := s.loadDocument(ctx, rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("file does not exist, skipping")
			return Summary{Skipped: []string{rel}}
		}
		log.Error("failed to load document", "error", err)
		return Summary{Failed: []string{rel}}
	}

	res, err := s.driver.ReconcileDocument(ctx, doc, s)
	if err != nil {
		log.Error("failed to reconcile document", "error", err)
		return Summary{Failed: []string{rel}}
	}

	for _, lang := range res.Current {
		if doc.LastHashes[lang] == res.Hash {
			continue
		}
		record := core.TranslationRecord{
			Hash:       res.Hash,
			Commit:     s.commit,
			Timestamp:  s.now().UTC(),
			SourceFile: rel,
		}
		if err := s.history.Put(ctx, TranslatedPath(rel, lang), record); err != nil {
			log.Error("failed to record translation", "lang", lang, "error", err)
		}
	}

	switch {
	case len(res.Failed) > 0:
		return Summary{Failed: []string{rel}}
	case res.Changed():
		return Summary{Translated: []string{rel}}
	case res.Source == "":
		return Summary{Skipped: []string{rel}}
	default:
		return Summary{UpToDate: []string{rel}}
	}
}

// loadDocument gathers the current content, existing siblings, recorded
// hashes and the previous version of a source file.
func (s *Syncer) loadDocument(ctx context.Context, rel string) (*core.Document, error) {
	content, err := readDocument(s.abs(rel))
	if err != nil {
		return nil, err
	}

	doc := &core.Document{
		Path:         rel,
		Content:      content,
		Revision:     s.commit,
		Translations: map[string]string{},
		LastHashes:   map[string]string{},
	}

	recordedCommit := ""
	for _, lang := range s.languages {
		translated := TranslatedPath(rel, lang)
		if text, err := readDocument(s.abs(translated)); err == nil {
			doc.Translations[lang] = text
		}
		record, ok, err := s.history.Get(ctx, translated)
		if err != nil {
			return nil, err
		}
		if ok {
			doc.LastHashes[lang] = record.Hash
			if recordedCommit == "" {
				recordedCommit = record.Commit
			}
		}
	}

	if s.repo != nil {
		doc.Previous, _, doc.HasPrevious = s.git.PreviousVersion(s.repo, rel, recordedCommit)
	}
	return doc, nil
}

// WriteTranslation implements reconcile.DocumentWriter.
func (s *Syncer) WriteTranslation(_ context.Context, doc *core.Document, lang, content string) error {
	target := s.abs(TranslatedPath(doc.Path, lang))
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	s.logger.Info("generated translated file", "file", TranslatedPath(doc.Path, lang))
	return nil
}

// DeleteFiles removes the translated siblings of deleted source files along
// with their history entries. A deleted translation only loses its entry.
func (s *Syncer) DeleteFiles(ctx context.Context, files []string) (Summary, error) {
	var sum Summary
	for _, file := range files {
		rel, err := s.relative(file)
		if err != nil || !isMarkdown(rel) {
			sum.Skipped = append(sum.Skipped, file)
			continue
		}

		if s.isTranslation(rel) {
			if err := s.history.Delete(ctx, rel); err != nil {
				return sum, err
			}
			continue
		}

		for _, lang := range s.languages {
			translated := TranslatedPath(rel, lang)
			err := os.Remove(s.abs(translated))
			switch {
			case err == nil:
				s.logger.Info("removed translated file", "file", translated)
				sum.Removed = append(sum.Removed, translated)
			case !errors.Is(err, os.ErrNotExist):
				s.logger.Error("failed to remove translated file", "file", translated, "error", err)
				sum.Failed = append(sum.Failed, translated)
				continue
			}
			if err := s.history.Delete(ctx, translated); err != nil {
				return sum, err
			}
		}
	}
	if err := s.history.Flush(ctx); err != nil {
		return sum, fmt.Errorf("failed to save translation history: %w", err)
	}
	return sum, nil
}
