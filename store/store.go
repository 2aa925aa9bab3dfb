// Package store provides durable key/value persistence for the
// portfolio ledger. Values are opaque byte payloads; callers decide the
// encoding (JSON throughout this module).
package store

// Store maps logical keys to serialized payloads.
//
// Load returns (nil, nil) when the key is absent. Corrupt payloads are
// the caller's concern: the ledger treats anything it cannot decode as
// absent rather than failing startup.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}
