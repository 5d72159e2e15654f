// Package storage is a file-backed key-value store, the client's stand-in for
// browser local storage. Each key maps to one JSON file under the state dir.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists JSON values under named keys in a single directory.
type Store struct {
	dir string
}

// New creates the state dir (0700) if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage: empty dir")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	// keys are fixed application constants, but never trust them as paths
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

// Set marshals v and writes it under key (0600).
func (s *Store) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), b, 0o600); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

// Get unmarshals the value under key into v. ok is false when the key is
// absent; a present but unreadable value returns ok=false with the error.
func (s *Store) Get(key string, v any) (ok bool, err error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return true, nil
}

// Remove deletes the value under key. Missing keys are not an error.
func (s *Store) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove %s: %w", key, err)
	}
	return nil
}
