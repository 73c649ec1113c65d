package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileEntry holds either a scalar or a list value. Exactly one side is set.
type fileEntry struct {
	Value *string  `json:"value,omitempty"`
	List  []string `json:"list,omitempty"`
}

// FileStore keeps all keys in a single JSON document on disk, mirroring the
// per-platform settings store a mobile client would use. Every write rewrites
// the whole document.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries map[string]fileEntry
	loaded  bool
}

// NewFileStore returns a store persisting to the given path. The file is not
// touched until the first operation.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = "./planner.json"
	}
	return &FileStore{path: path}
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return "", err
	}
	entry, ok := s.entries[key]
	if !ok || entry.Value == nil {
		return "", ErrKeyNotFound
	}
	return *entry.Value, nil
}

func (s *FileStore) GetList(ctx context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	entry, ok := s.entries[key]
	if !ok || entry.List == nil {
		return nil, ErrKeyNotFound
	}
	out := make([]string, len(entry.List))
	copy(out, entry.List)
	return out, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	v := value
	s.entries[key] = fileEntry{Value: &v}
	return s.flush()
}

func (s *FileStore) SetList(ctx context.Context, key string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	list := make([]string, len(values))
	copy(list, values)
	s.entries[key] = fileEntry{List: list}
	return s.flush()
}

func (s *FileStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

// load reads the backing file once. Subsequent calls are no-ops.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}
	s.entries = make(map[string]fileEntry)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read store file %s: %w", s.path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.entries); err != nil {
			return fmt.Errorf("decode store file %s: %w", s.path, err)
		}
	}
	s.loaded = true
	return nil
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prepare store directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write store file %s: %w", s.path, err)
	}
	return nil
}
