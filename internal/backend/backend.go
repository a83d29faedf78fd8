// Package backend selects and constructs the storage medium snapshots are
// mirrored to.
package backend

import (
	"context"

	"tally/internal/storage"
)

// CleanupFunc releases a backend's resources.
type CleanupFunc func() error

// Result contains the constructed medium and an optional cleanup function.
type Result struct {
	Store   storage.KeyValue
	Cleanup CleanupFunc
}

// Factory creates storage media based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// File backend
	DataDirectory string

	// SQLite backend
	SQLiteDBPath string
}

// Type identifies a storage medium.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
