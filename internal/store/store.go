package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/MihkelHunter/todotxt/internal/config"
	"github.com/MihkelHunter/todotxt/todo"
)

// Open returns the backend selected by cfg.
func Open(cfg *config.Config) (todo.Repository, error) {
	switch cfg.Backend {
	case config.BackendFile:
		fs, err := NewFile(afero.NewOsFs(), cfg.TodoFile)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		db, err := NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
