package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"threes/meta"

	"gopkg.in/yaml.v3"
)

// BestScoreStore persists the best score across games.
type BestScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

type memoryStore struct {
	mu    sync.Mutex
	score int
}

func NewMemoryStore() BestScoreStore {
	return &memoryStore{}
}

func (s *memoryStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score, nil
}

func (s *memoryStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = score
	return nil
}

// fileStore keeps a YAML map of storage keys to integers. Other keys in the
// file are preserved on save.
type fileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) BestScoreStore {
	return &fileStore{path: path}
}

func (s *fileStore) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return 0, err
	}
	return values[meta.BEST_SCORE_KEY], nil
}

func (s *fileStore) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[meta.BEST_SCORE_KEY] = score

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode best score: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write best score file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace best score file: %w", err)
	}
	return nil
}

// read returns an empty map when the file does not exist yet.
func (s *fileStore) read() (map[string]int, error) {
	values := map[string]int{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read best score file: %w", err)
	}
	if err = yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode best score file %s: %w", s.path, err)
	}
	if values == nil {
		values = map[string]int{}
	}
	return values, nil
}

type keepMax struct {
	mu    sync.Mutex
	inner BestScoreStore
}

// KeepMax wraps s so that a save never lowers the stored score. Games running
// in parallel can share the result.
func KeepMax(s BestScoreStore) BestScoreStore {
	return &keepMax{inner: s}
}

func (s *keepMax) Load() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Load()
}

func (s *keepMax) Save(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.inner.Load()
	if err != nil {
		return err
	}
	if score <= current {
		return nil
	}
	return s.inner.Save(score)
}
