package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/bilingo/internal/core"
)

func TestJSONHistory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".translation_history.json")

	h, err := OpenJSONHistory(path)
	require.NoError(t, err)

	_, ok, err := h.Get(ctx, "README.ja.md")
	require.NoError(t, err)
	assert.False(t, ok)

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, h.Put(ctx, "README.ja.md", core.TranslationRecord{Hash: "abc", Commit: "c1", Timestamp: ts, SourceFile: "README.md"}))
	require.NoError(t, h.Put(ctx, "docs/guide.en.md", core.TranslationRecord{Hash: "def", Commit: "c1", Timestamp: ts}))

	// Nothing is written before Flush.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, h.Flush(ctx))

	reopened, err := OpenJSONHistory(path)
	require.NoError(t, err)
	rec, ok, err := reopened.Get(ctx, "README.ja.md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", rec.Hash)
	assert.Equal(t, "c1", rec.Commit)
	assert.Equal(t, "README.md", rec.SourceFile)
	assert.True(t, ts.Equal(rec.Timestamp))

	entries, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "README.ja.md", entries[0].Path)
	assert.Equal(t, "docs/guide.en.md", entries[1].Path)

	require.NoError(t, reopened.Delete(ctx, "README.ja.md"))
	require.NoError(t, reopened.Flush(ctx))

	again, err := OpenJSONHistory(path)
	require.NoError(t, err)
	_, ok, _ = again.Get(ctx, "README.ja.md")
	assert.False(t, ok)
}

func TestJSONHistory_LegacyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")
	legacy := `{
  "README.ja.md": {"hash": "h1", "commit": "abc123", "timestamp": "2023-11-02T10:20:30.123456"},
  "docs/setup.en.md": {"hash": "h2", "commit": "def456", "timestamp": "not a date"}
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	h, err := OpenJSONHistory(path)
	require.NoError(t, err)

	rec, ok, err := h.Get(ctx, "README.ja.md")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "h1", rec.Hash)
	assert.Equal(t, 2023, rec.Timestamp.Year())

	rec, ok, _ = h.Get(ctx, "docs/setup.en.md")
	require.True(t, ok)
	assert.True(t, rec.Timestamp.IsZero())
}

func TestJSONHistory_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	h, err := OpenJSONHistory(empty)
	require.NoError(t, err)
	entries, _ := h.List(context.Background())
	assert.Empty(t, entries)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	_, err = OpenJSONHistory(broken)
	assert.Error(t, err)
}

func TestJSONHistory_FlushWithoutChangesDoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h, err := OpenJSONHistory(path)
	require.NoError(t, err)

	require.NoError(t, h.Delete(context.Background(), "missing.md"))
	require.NoError(t, h.Flush(context.Background()))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
