package main

import (
	"fmt"
	"path/filepath"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/db"
	"github.com/sevigo/bilingo/internal/gitutil"
	"github.com/sevigo/bilingo/internal/storage"
)

// openHistory opens the history backend for the checkout at root. The
// returned cleanup must always be called.
func openHistory(cfg *config.Config, root string, gitClient *gitutil.Client) (storage.HistoryStore, func(), error) {
	switch cfg.Storage.HistoryBackend {
	case config.HistoryBackendPostgres:
		conn, cleanup, err := db.NewDatabase(cfg.Database)
		if err != nil {
			return nil, cleanup, err
		}
		return storage.NewPostgresHistory(conn.DB, repositoryName(root, gitClient)), cleanup, nil

	default:
		path := cfg.Storage.HistoryPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		history, err := storage.OpenJSONHistory(path)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to open history file: %w", err)
		}
		return history, func() {}, nil
	}
}

// repositoryName scopes Postgres history rows: owner/name of the origin
// remote, or the directory name for checkouts without one.
func repositoryName(root string, gitClient *gitutil.Client) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	if repo, err := gitClient.Open(abs); err == nil {
		if owner, name, err := gitClient.OriginRepository(repo); err == nil {
			return owner + "/" + name
		}
	}
	return filepath.Base(abs)
}
