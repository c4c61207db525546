// Package storage persists the translation history of documentation files.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/sevigo/bilingo/internal/core"
)

// HistoryStore keeps one TranslationRecord per translated file path.
type HistoryStore interface {
	Get(ctx context.Context, path string) (core.TranslationRecord, bool, error)
	Put(ctx context.Context, path string, record core.TranslationRecord) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]Entry, error)
	// Flush persists buffered changes. Backends that write through treat it
	// as a no-op.
	Flush(ctx context.Context) error
}

// Entry is a record together with the translated path it belongs to.
type Entry struct {
	Path string `json:"path" db:"path"`
	core.TranslationRecord
}

// timestampLayouts accepts RFC 3339 as well as the zone-less ISO 8601 form
// older history files were written with.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type fileRecord struct {
	Hash       string `json:"hash"`
	Commit     string `json:"commit"`
	Timestamp  string `json:"timestamp"`
	SourceFile string `json:"source_file,omitempty"`
}

// JSONHistory is a HistoryStore backed by a single JSON file. The file is
// read once on open and written on Flush.
type JSONHistory struct {
	path    string
	mu      sync.Mutex
	records map[string]core.TranslationRecord
	dirty   bool
}

// OpenJSONHistory loads the history file at path. A missing file yields an
// empty history.
func OpenJSONHistory(path string) (*JSONHistory, error) {
	h := &JSONHistory{path: path, records: map[string]core.TranslationRecord{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", path, err)
	}
	if len(data) == 0 {
		return h, nil
	}

	var raw map[string]fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	for key, r := range raw {
		h.records[filepath.ToSlash(key)] = core.TranslationRecord{
			Hash:       r.Hash,
			Commit:     r.Commit,
			Timestamp:  parseTimestamp(r.Timestamp),
			SourceFile: r.SourceFile,
		}
	}
	return h, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Get implements HistoryStore.
func (h *JSONHistory) Get(_ context.Context, path string) (core.TranslationRecord, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.records[filepath.ToSlash(path)]
	return r, ok, nil
}

// Put implements HistoryStore.
func (h *JSONHistory) Put(_ context.Context, path string, record core.TranslationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[filepath.ToSlash(path)] = record
	h.dirty = true
	return nil
}

// Delete implements HistoryStore.
func (h *JSONHistory) Delete(_ context.Context, path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	key := filepath.ToSlash(path)
	if _, ok := h.records[key]; ok {
		delete(h.records, key)
		h.dirty = true
	}
	return nil
}

// List implements HistoryStore. Entries are sorted by path.
func (h *JSONHistory) List(_ context.Context) ([]Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := make([]Entry, 0, len(h.records))
	for p, r := range h.records {
		entries = append(entries, Entry{Path: p, TranslationRecord: r})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Flush writes the history file when it changed. The file is replaced
// atomically through a temporary sibling.
func (h *JSONHistory) Flush(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.dirty {
		return nil
	}

	out := make(map[string]fileRecord, len(h.records))
	for key, r := range h.records {
		out[key] = fileRecord{
			Hash:       r.Hash,
			Commit:     r.Commit,
			Timestamp:  r.Timestamp.Format(time.RFC3339),
			SourceFile: r.SourceFile,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	h.dirty = false
	return nil
}
