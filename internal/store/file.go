// internal/store/file.go
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	apperrors "sareestage-backend/pkg/errors"
)

// FileStore persists all keys in a single JSON file under a profile
// directory, the way the browser build keeps everything in localStorage.
// Writes go through a temp file and rename so a crash mid-write cannot
// corrupt the profile.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	delete(data, key)
	return s.save(data)
}

func (s *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(err.Error())
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperrors.NewPersistenceError("profile file is corrupted: " + err.Error())
	}
	return data, nil
}

func (s *FileStore) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return apperrors.NewPersistenceError(err.Error())
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return apperrors.NewPersistenceError(err.Error())
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return apperrors.NewPersistenceError(err.Error())
	}
	return nil
}
