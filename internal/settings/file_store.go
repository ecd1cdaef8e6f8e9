package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// settingsKey is the single document key inside the store file.
const settingsKey = "settings"

// StoreFilename is the name of the settings file inside the data directory.
const StoreFilename = "job_settings.json"

// Store provides whole-snapshot access to the persisted settings.
type Store interface {
	// Load returns the stored snapshot, or nil if none has been saved.
	Load() (*Settings, error)
	// Save persists the snapshot and returns the persisted value.
	Save(s Settings) (Settings, error)
}

// FileStore persists the settings snapshot as a single-key JSON document.
// Access is serialized; concurrent tool calls interleave at snapshot
// granularity only.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// EnsureDefaults writes the default snapshot if the store is empty and
// returns the effective settings.
func (fs *FileStore) EnsureDefaults() (Settings, error) {
	current, err := fs.Load()
	if err != nil {
		return Settings{}, err
	}
	if current != nil {
		return *current, nil
	}
	return fs.Save(Default())
}

// Load implements Store.
func (fs *FileStore) Load() (*Settings, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings store: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings store: %w", err)
	}
	raw, ok := doc[settingsKey]
	if !ok {
		return nil, nil
	}

	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// Save implements Store.
func (fs *FileStore) Save(s Settings) (Settings, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc := map[string]Settings{settingsKey: s}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Settings{}, fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Settings{}, fmt.Errorf("failed to create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return Settings{}, fmt.Errorf("failed to write settings store: %w", err)
	}
	return s, nil
}
