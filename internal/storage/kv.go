// Package storage provides the durable key-value port the rest of the client
// persists through, plus its sqlite implementation. Nothing above this package
// touches the database directly.
package storage

import "context"

// Well-known keys. Read items are namespaced per account, see ReadItemsKey.
const (
	KeyUsers   = "users"
	KeySession = "session"
)

// ReadItemsKey returns the key holding the read-article set for one account.
func ReadItemsKey(email string) string {
	return "read_items:" + email
}

// KV is the persistence port: string-keyed durable storage with per-key
// atomic writes. Get returns (nil, nil) when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
