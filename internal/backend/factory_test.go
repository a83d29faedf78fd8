package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBackendRejectsUnknownType(t *testing.T) {
	factory := NewFactory(nil)

	_, err := factory.CreateBackend(context.Background(), Config{Type: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend type")
}

func TestCreateBackendPerType(t *testing.T) {
	factory := NewFactory(nil)
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name   string
		config Config
	}{
		{"memory", Config{Type: MemoryBackend}},
		{"file", Config{Type: FileBackend, DataDirectory: filepath.Join(dir, "file")}},
		{"sqlite", Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "tally.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := factory.CreateBackend(ctx, tt.config)
			require.NoError(t, err)
			require.NotNil(t, result.Store)

			// Media must be usable right away.
			require.NoError(t, result.Store.Save(ctx, "tally.state", []byte("{}")))
			value, ok, err := result.Store.Load(ctx, "tally.state")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "{}", string(value))

			if result.Cleanup != nil {
				assert.NoError(t, result.Cleanup())
			}
		})
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, valid := range []Type{FileBackend, SQLiteBackend, MemoryBackend} {
		assert.True(t, valid.IsValid(), valid)
	}
	assert.False(t, Type("postgres").IsValid())
}
