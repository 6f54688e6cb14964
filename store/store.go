// Package store keeps small values that outlive a session, such as the best
// score, in a JSON key/value file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
)

var (
	dataFile = "blockudoku-term/store.json"
)

// BestScoreKey is the key the best score is stored under.
const BestScoreKey = "bd_best"

// KV is a string key/value store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore is a KV kept in one JSON object on disk. Every Set rewrites the
// whole file.
type FileStore struct {
	path string
}

// Open returns the store in the user's XDG data directory, creating the
// directory if needed.
func Open() (*FileStore, error) {
	path, err := xdg.DataFile(dataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}
	return NewFileStore(path), nil
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileStore) Delete(key string) error {
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

// MemoryStore is a KV that lives in memory only.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	delete(m.values, key)
	return nil
}

// BestScore reads and writes the best score in a KV. It implements
// engine.BestScoreStore.
type BestScore struct {
	KV KV
}

// LoadBest returns the stored best score, or 0 when none is stored.
func (b BestScore) LoadBest() (int, error) {
	v, ok, err := b.KV.Get(BestScoreKey)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid best score %q", v)
	}
	return n, nil
}

// SaveBest stores score if it is higher than the stored value.
func (b BestScore) SaveBest(score int) error {
	cur, err := b.LoadBest()
	if err == nil && cur >= score {
		return nil
	}
	return b.KV.Set(BestScoreKey, strconv.Itoa(score))
}

// ResetBest removes the stored best score.
func (b BestScore) ResetBest() error {
	return b.KV.Delete(BestScoreKey)
}
