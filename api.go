package cacheproxy

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/cacheproxy/codec"
	st "github.com/unkn0wn-root/cacheproxy/store"
)

// Producer yields the value to be cached: any nested structure of scalars,
// sequences, mappings and record-like values (see Attributer). It runs only
// on cache miss. Errors propagate to the Resolve/Invoke caller and nothing
// is stored.
type Producer func(ctx context.Context) (any, error)

// Proxy is a transparent façade over one cache key. It holds the means to
// obtain and interpret the value - store handle, key, TTL, producer - but
// never the value itself: every Resolve queries the store, so invalidation
// takes effect across long-lived bindings without a process restart.
//
// Construct once and hold for the process lifetime; safe for concurrent use
// as long as the Store is.
type Proxy interface {
	// Resolve returns the fully rehydrated current value: on hit the stored
	// form decoded into Records, on miss the producer result after a
	// serialize-store round. Never returns a half-serialized structure.
	Resolve(ctx context.Context) (any, error)

	// Invoke resolves and then performs op on the resolved value,
	// dispatching against the capability table of its kind (record,
	// sequence or scalar ops). Any operation valid on the underlying value
	// is valid on the proxy.
	Invoke(ctx context.Context, op string, args ...any) (any, error)

	// Describe resolves and returns the value's diagnostic representation.
	Describe(ctx context.Context) (string, error)

	// Invalidate deletes the entry at the cache key. The next Resolve runs
	// the producer again even inside the original TTL window.
	Invalidate(ctx context.Context) error

	// Key returns the derived store key.
	Key() string
}

// Options tune a Proxy. Store and Producer are required; the rest default.
type Options struct {
	// Required
	Store    st.Store
	Producer Producer

	// Key is the human-supplied cache key fragment. The final store key is
	// the fragment joined with the proxy type name, non-word runs collapsed
	// to "_". If empty, a per-construction token is used instead - which
	// makes the key different on every process start, silently disabling
	// cross-process sharing. Always set Key when sharing matters.
	Key string

	TTL    time.Duration // store expiry; 0 => 10m
	Codec  c.Codec       // nil => codec.Msgpack{}
	Logger Logger        // nil => NopLogger
	Hooks  Hooks         // nil => NopHooks
}

// New constructs a Proxy over opts.Store at the key derived from opts.Key.
func New(opts Options) (Proxy, error) {
	return newProxy(opts)
}
