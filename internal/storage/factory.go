package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Backend identifies a persistence backend.
type Backend string

const (
	// BackendJSONFile stores state in a single JSON document. Default.
	BackendJSONFile Backend = "jsonfile"
	// BackendSQLite stores state in a local SQLite database.
	BackendSQLite Backend = "sqlite"
	// BackendMemory keeps state in process memory only.
	BackendMemory Backend = "memory"
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	return string(b)
}

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendJSONFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	// Path is the state file (jsonfile) or database file (sqlite).
	// Empty means the per-user default location.
	Path string
}

// Open creates the configured repository. The returned cleanup function must
// be called on shutdown; it is never nil.
func Open(cfg Config, logger *logrus.Logger) (Repository, CleanupFunc, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryRepository(), noop, nil

	case BackendJSONFile, "":
		path := cfg.Path
		if path == "" {
			path = defaultStatePath("moni.json")
		}
		return NewJSONFileRepository(path, logger), noop, nil

	case BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = defaultStatePath("moni.db")
		}
		repo, err := NewSQLiteRepository(path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite backend: %w", err)
		}
		return repo, repo.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}

// defaultStatePath places state files under ~/.moni, falling back to the
// working directory when the home directory cannot be determined.
func defaultStatePath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filename
	}
	return filepath.Join(home, ".moni", filename)
}
