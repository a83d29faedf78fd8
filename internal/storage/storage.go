// Package storage provides the durable key-value media that snapshot blobs
// are mirrored to. Each backend stores whole values under well-known keys;
// there are no deltas and no versioning.
package storage

import "context"

// KeyValue is a local persistence medium for serialized snapshots. Save is
// a whole-value overwrite; Load reports ok=false when the key is absent.
type KeyValue interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
