package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/bilingo/internal/core"
)

type postgresHistory struct {
	db         *sqlx.DB
	repository string
}

// NewPostgresHistory creates a HistoryStore on the translation_records table.
// Records are scoped to repository so several checkouts can share a database.
func NewPostgresHistory(db *sqlx.DB, repository string) HistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &postgresHistory{db: db, repository: repository}
}

// Get retrieves the record for a translated file.
func (s *postgresHistory) Get(ctx context.Context, path string) (core.TranslationRecord, bool, error) {
	query := `
		SELECT hash, commit_sha, updated_at, source_file
		FROM translation_records
		WHERE repository = $1 AND path = $2`

	var r core.TranslationRecord
	err := s.db.GetContext(ctx, &r, query, s.repository, filepath.ToSlash(path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TranslationRecord{}, false, nil
		}
		return core.TranslationRecord{}, false, fmt.Errorf("failed to get translation record for %s: %w", path, err)
	}
	return r, true, nil
}

// Put inserts or replaces the record for a translated file.
func (s *postgresHistory) Put(ctx context.Context, path string, record core.TranslationRecord) error {
	query := `
		INSERT INTO translation_records (repository, path, source_file, hash, commit_sha, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (repository, path) DO UPDATE
		SET source_file = EXCLUDED.source_file,
			hash = EXCLUDED.hash,
			commit_sha = EXCLUDED.commit_sha,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query, s.repository, filepath.ToSlash(path),
		record.SourceFile, record.Hash, record.Commit, record.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to save translation record for %s: %w", path, err)
	}
	return nil
}

// Delete removes the record for a translated file.
func (s *postgresHistory) Delete(ctx context.Context, path string) error {
	query := `DELETE FROM translation_records WHERE repository = $1 AND path = $2`
	if _, err := s.db.ExecContext(ctx, query, s.repository, filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("failed to delete translation record for %s: %w", path, err)
	}
	return nil
}

// List returns all records of the repository sorted by path.
func (s *postgresHistory) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT path, hash, commit_sha, updated_at, source_file
		FROM translation_records
		WHERE repository = $1
		ORDER BY path`

	var entries []Entry
	if err := s.db.SelectContext(ctx, &entries, query, s.repository); err != nil {
		return nil, fmt.Errorf("failed to list translation records: %w", err)
	}
	return entries, nil
}

// Flush is a no-op; every change is written through.
func (s *postgresHistory) Flush(context.Context) error {
	return nil
}
