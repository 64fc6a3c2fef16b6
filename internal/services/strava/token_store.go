package strava

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TokenStore abstracts persistence for Strava OAuth tokens.
type TokenStore interface {
	Load() (tokenState, error)
	Save(tokenState) error
}

// FileTokenStore writes token state to a JSON file on disk.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore builds a FileTokenStore rooted at the provided path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads token state from disk. A missing file resolves to an empty state.
func (s *FileTokenStore) Load() (tokenState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tokenState{}, nil
		}
		return tokenState{}, fmt.Errorf("read strava token file: %w", err)
	}

	var state tokenState
	if err := json.Unmarshal(data, &state); err != nil {
		return tokenState{}, fmt.Errorf("decode strava token file: %w", err)
	}
	return state, nil
}

// Save persists token state to disk with restricted permissions.
func (s *FileTokenStore) Save(state tokenState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure token directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode strava token state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write strava token file: %w", err)
	}
	return nil
}
