// Package storage provides the durable key-value store backing the client
// core. The store is string-keyed and string-valued, synchronous, and owned
// exclusively by the current process; every mutation is fully persisted
// before the call returns.
package storage

import "context"

// Store is the abstract durable store. Get reports ok=false when the key is
// absent. Delete is a no-op for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
