package docsync

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// defaultExcludedDirs are never searched for documents.
var defaultExcludedDirs = []string{"node_modules", "vendor"}

// TranslatedPath returns the sibling path holding the lang translation of a
// Markdown file: docs/guide.md becomes docs/guide.ja.md.
func TranslatedPath(p, lang string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + "." + lang + ext
}

// readDocument reads a file as UTF-8, dropping a leading byte order mark.
func readDocument(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

func isMarkdown(p string) bool {
	return strings.EqualFold(path.Ext(p), ".md")
}

// isTranslation reports whether p is a translated sibling (name.xx.md) for
// one of the configured languages.
func (s *Syncer) isTranslation(p string) bool {
	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	for _, lang := range s.languages {
		if strings.HasSuffix(base, "."+lang) {
			return true
		}
	}
	return false
}

func (s *Syncer) isExcludedDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range defaultExcludedDirs {
		if name == d {
			return true
		}
	}
	for _, d := range s.repoCfg.ExcludeDirs {
		if name == strings.Trim(d, "/") {
			return true
		}
	}
	return false
}

func (s *Syncer) isExcludedFile(rel string) bool {
	for _, pattern := range s.repoCfg.ExcludeFiles {
		pattern = filepath.ToSlash(pattern)
		if pattern == rel || pattern == path.Base(rel) {
			return true
		}
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	// Excluded directories also apply to explicitly listed files.
	for _, dir := range strings.Split(path.Dir(rel), "/") {
		if dir != "." && s.isExcludedDir(dir) {
			return true
		}
	}
	return false
}

// Discover walks the repository and returns every source Markdown file,
// relative to the root and slash separated.
func (s *Syncer) Discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && s.isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := s.relative(p)
		if err != nil {
			return err
		}
		if isMarkdown(rel) && !s.isTranslation(rel) && !s.isExcludedFile(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover markdown files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// relative converts a path given on the command line or found while walking
// into a root relative, slash separated path.
func (s *Syncer) relative(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.root, p)
	}
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside the repository", p)
	}
	return rel, nil
}

func (s *Syncer) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}
