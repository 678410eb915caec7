package platform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "platform.json"

// File persists the key/value map as a JSON document under a base directory,
// the closest durable analogue to browser local storage.
type File struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// NewFile ensures the base directory exists and loads any previous snapshot.
func NewFile(baseDir string) (*File, error) {
	if baseDir == "" {
		baseDir = "./data"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	f := &File{
		path:  filepath.Join(baseDir, fileName),
		items: make(map[string]string),
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read storage snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &f.items); err != nil {
		// Corrupt snapshot: start fresh rather than refuse to boot.
		f.items = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[key]
	return v, ok
}

func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = value
	f.flush()
}

func (f *File) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	f.flush()
}

// flush writes the snapshot; callers hold the mutex. Write errors are
// swallowed: the collaborator contract is fire-and-forget.
func (f *File) flush() {
	raw, err := json.Marshal(f.items)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, raw, 0o644)
}
