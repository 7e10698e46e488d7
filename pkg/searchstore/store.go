// Package searchstore persists named search configurations as JSON files
// so a filter set can be reloaded across sessions.
package searchstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/candid-tools/grants-fetcher/pkg/logging"
	"github.com/candid-tools/grants-fetcher/pkg/search"
)

// DefaultDir is where saved searches live unless configured otherwise.
const DefaultDir = "saved_searches"

// ErrNotFound indicates the named search configuration does not exist.
var ErrNotFound = errors.New("saved search not found")

// SavedSearch is one persisted search configuration: the full filter plus
// the output file prefix the user chose.
type SavedSearch struct {
	Filter       search.Filter `json:"filter"`
	OutputPrefix string        `json:"output_prefix"`
}

// Store reads and writes saved searches under a single directory, one
// JSON file per name.
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a store rooted at dir. An empty dir selects DefaultDir.
// The directory is created on first save.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{
		dir:    dir,
		logger: logging.NewLogger("searchstore"),
	}
}

// Save writes the configuration under name, overwriting any previous one.
func (s *Store) Save(name string, cfg SavedSearch) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create saved searches dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal saved search: %w", err)
	}

	path := s.path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write saved search: %w", err)
	}

	s.logger.Info().
		Str("search", name).
		Str("path", path).
		Msg("Search configuration saved")

	return nil
}

// Load reads the configuration saved under name.
func (s *Store) Load(name string) (SavedSearch, error) {
	var cfg SavedSearch

	if err := validateName(name); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return cfg, fmt.Errorf("read saved search: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse saved search %s: %w", name, err)
	}

	s.logger.Info().Str("search", name).Msg("Search configuration loaded")
	return cfg, nil
}

// List returns the names of all saved searches, sorted. A missing
// directory means no saved searches, not an error.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read saved searches dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)

	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// validateName keeps saved search names inside the store directory.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("search name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("search name must not contain path separators: %q", name)
	}
	return nil
}
