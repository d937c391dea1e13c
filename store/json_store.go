package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// JSONStore handles heightmap persistence using a local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

// jsonData is the structure of the JSON file.
type jsonData struct {
	Heightmaps map[string]*Record `json:"heightmaps"`
}

// NewJSONStore opens filePath, creating it when it does not exist.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{Heightmaps: make(map[string]*Record)},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else if err := store.persist(); err != nil {
		return nil, fmt.Errorf("failed to create JSON store file: %w", err)
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Heightmaps == nil {
		js.data.Heightmaps = make(map[string]*Record)
	}

	return nil
}

// persist writes the whole store to disk. The caller must hold the write lock
// so file writes never overlap.
func (js *JSONStore) persist() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0o644)
}

// Save stores a copy of rec under rec.Name, replacing any previous entry.
func (js *JSONStore) Save(rec *Record) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.data.Heightmaps[rec.Name] = rec.clone()

	return js.persist()
}

// Load returns the record stored under name.
func (js *JSONStore) Load(name string) (*Record, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	rec, exists := js.data.Heightmaps[name]
	if !exists {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	return rec.clone(), nil
}

// List returns stored names in ascending order.
func (js *JSONStore) List() ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.data.Heightmaps))
	for name := range js.data.Heightmaps {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Close flushes the store to disk.
func (js *JSONStore) Close() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	return js.persist()
}
