package backend

import (
	"context"
	"fmt"

	"tally/internal/log"
	"tally/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return f.createFileBackend(config)
	}
}

func (f *DefaultFactory) createFileBackend(config Config) (*Result, error) {
	dir := config.DataDirectory
	if dir == "" {
		dir = "data"
	}

	kv, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("initialize file store: %w", err)
	}

	f.logger.Info("Initialized file backend", log.FieldBackend, FileBackend.String(), "data_directory", dir)

	return &Result{Store: kv, Cleanup: kv.Close}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	kv, err := storage.NewSQLiteStore(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite store: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", log.FieldBackend, SQLiteBackend.String(), "db_path", config.SQLiteDBPath)

	return &Result{Store: kv, Cleanup: kv.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	f.logger.Info("Initialized memory backend", log.FieldBackend, MemoryBackend.String())

	return &Result{Store: storage.NewMemoryStore(), Cleanup: nil}, nil
}
