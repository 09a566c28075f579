package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists preferences as a JSON file. Methods are not safe for
// concurrent use; the application serializes access.
type Store struct {
	path string
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the standard preferences location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".newslens", "prefs.json")
}

// Load reads preferences from disk, returning defaults when no file
// exists or the file is unreadable.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read preferences: %w", err)
	}

	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse preferences: %w", err)
	}
	if p.BiasPreference == "" {
		p.BiasPreference = Default().BiasPreference
	}
	return p, nil
}

// Save writes preferences to disk.
func (s *Store) Save(p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}

// AppendHistory loads, appends a reading entry, and saves. Idempotent on
// duplicate URLs.
func (s *Store) AppendHistory(entry Entry) error {
	p, err := s.Load()
	if err != nil {
		return err
	}

	updated := p.AddHistory(entry)
	if len(updated.ReadingHistory) == len(p.ReadingHistory) {
		return nil // Duplicate URL, nothing to persist
	}
	return s.Save(updated)
}
