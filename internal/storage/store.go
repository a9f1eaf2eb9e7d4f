package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Storer is a read-only view over loaded templates.
type Storer[T ValidatingSpec] interface {
	Get(string) T
	GetAll() map[string]T
}

// SortedIds returns the ids held by st in lexical order. Callers that need a
// stable iteration order (generation tables, listings) should use this rather
// than ranging over GetAll.
func SortedIds[T ValidatingSpec](st Storer[T]) []string {
	return slices.Sorted(maps.Keys(st.GetAll()))
}

// MemoryStore is a Storer backed only by a map. FileStore serves its records
// from one.
type MemoryStore[T ValidatingSpec] struct {
	mu      sync.RWMutex
	records map[string]T
}

func NewMemoryStore[T ValidatingSpec](records map[string]T) *MemoryStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &MemoryStore[T]{records: maps.Clone(records)}
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.records)
}

// FileStore loads every *.json asset under a directory tree once and serves
// the validated specs from memory.
type FileStore[T ValidatingSpec] struct {
	*MemoryStore[T]
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	records, err := loadAssets[T](path)
	if err != nil {
		return nil, err
	}

	return &FileStore[T]{MemoryStore: NewMemoryStore(records)}, nil
}

func loadAssets[T ValidatingSpec](root string) (map[string]T, error) {
	records := map[string]T{}

	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		asset, err := loadAsset[T](path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}

		err = asset.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		id := asset.Id().String()
		if _, ok := records[id]; ok {
			return fmt.Errorf("duplicate key detected: %s", id)
		}

		records[id] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func loadAsset[T ValidatingSpec](path string) (*Asset[T], error) {
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	err = json.Unmarshal(jsonData, asset)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}

// WriteFileAtomic writes data to a temp file beside path then renames it into
// place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
