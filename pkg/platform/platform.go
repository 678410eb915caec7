// Package platform abstracts the key/value persistence surface the browser
// app delegated to localStorage. Implementations must be safe to use before
// any rendering surface exists, so constructors never require a live
// collaborator besides their own backing store.
package platform

import (
	"fmt"

	"github.com/noah-isme/form-builder/pkg/config"
)

// Storage is the persistence collaborator. Get reports presence explicitly
// because an empty string is a legal stored value.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// FromConfig selects a storage backend. The memory backend is the no-setup
// fallback and never fails.
func FromConfig(cfg config.PersistenceConfig) (Storage, error) {
	switch cfg.Backend {
	case "", config.PersistenceMemory:
		return NewMemory(), nil
	case config.PersistenceFile:
		return NewFile(cfg.FileDir)
	case config.PersistenceRedis:
		return NewRedis(cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Backend)
	}
}
