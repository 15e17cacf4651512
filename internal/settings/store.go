// Package settings implements core.SettingsStore (spec §6): a YAML file on
// disk as the durable source of truth, grounded on MrWong99-glyphoxa's
// internal/config YAML loader, with an optional Redis-backed cache layer in
// front of it grounded on JohnPitter-concord's internal/store/redis client.
package settings

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nicksukie/livesub/internal/core"
)

// FileStore is a flat string-keyed YAML file, rewritten whole on every Set
// (the settings file is small — a handful of provider/mode/threshold keys —
// so there is no need for the session log's incremental-flush treatment).
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads path if it exists, or starts from an empty store if it does
// not (first run).
func Open(path string) (*FileStore, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileStore{path: path, values: values}, nil
		}
		return nil, fmt.Errorf("settings: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("settings: parse %q: %w", path, err)
	}
	return &FileStore{path: path, values: values}, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	data, err := yaml.Marshal(s.values)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %q: %w", s.path, err)
	}
	return nil
}

var _ core.SettingsStore = (*FileStore)(nil)
