// Package config loads the front-end configuration from a TOML file.
//
// Values are applied in order: defaults, the config file, then the
// TODO_FILE environment variable used by todo.sh.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	DefaultDirName  = ".todoapp"
	DefaultFileName = "config.toml"
	DefaultWebAddr  = ":8080"
)

type Config struct {
	// TodoFile is the todo.txt path used by the file backend.
	TodoFile string `toml:"todo_file"`
	// Backend selects the store: "file" or "sqlite".
	Backend string `toml:"backend"`
	// DBPath is the SQLite database used by the sqlite backend.
	DBPath string `toml:"db_path"`
	// DateOnAdd stamps today's creation date on added tasks.
	DateOnAdd bool `toml:"date_on_add"`

	Web WebConfig `toml:"web"`
	Log LogConfig `toml:"log"`
}

type WebConfig struct {
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultDir is ~/.todoapp.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		TodoFile: filepath.Join(dir, "todo.txt"),
		Backend:  BackendFile,
		DBPath:   filepath.Join(dir, "tasks.db"),
		Web:      WebConfig{Addr: DefaultWebAddr},
		Log:      LogConfig{Level: "info"},
	}, nil
}

// Load reads path over the defaults. An empty path means
// ~/.todoapp/config.toml; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, DefaultFileName)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}

	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.TodoFile = v
	}

	cfg.TodoFile = expandPath(cfg.TodoFile)
	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend and that it has a path to work with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.TodoFile == "" {
			return errors.New("config: todo_file is required for the file backend")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("config: db_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("config: unknown backend %q, must be one of: file, sqlite", c.Backend)
	}
	return nil
}

func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
