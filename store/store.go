// Package store defines the key-value collaborator the proxy consumes.
//
// Implementations MUST be byte-for-byte transparent: Fetch must return
// exactly the []byte previously stored for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal
// transforms (e.g., compression), they MUST be fully reversed.
//
// Expiry is owned entirely by the store; the TTL countdown starts at write
// time and the proxy never tracks it.
package store

import (
	"context"
	"time"
)

// ComputeFunc produces the bytes to store when Fetch misses. Errors abort
// the fetch; a failed compute must never be cached.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Store is a minimal byte store with fetch-or-populate and TTL semantics.
// Must be safe for concurrent use.
//
// Fetch gives at most whatever atomicity the backing store offers: under
// concurrent miss, compute may run more than once across goroutines or
// processes (last write wins). Implementations may layer locking on top but
// the contract does not require it.
type Store interface {
	// Fetch returns the value at key if present and unexpired, else calls
	// compute, stores its result under key with expiry ttl, and returns it.
	Fetch(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)

	// Delete removes any entry at key; no error if absent.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
