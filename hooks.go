package cacheproxy

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; the proxy calls them on
// hot paths. Wrap with hooks/async to move work off the request path.
type Hooks interface {
	// Resolve found a live entry in the store.
	Hit(key string)

	// Resolve ran the producer and populated the store.
	Miss(key string)

	// The producer failed; nothing was written to the store.
	ProducerError(key string, err error)

	// A stored entry could not be read back and was deleted before a
	// recompute pass. reason is "frame" or "decode".
	SelfHeal(key, reason string)

	// Invalidate deleted the entry at key.
	Invalidated(key string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                  {}
func (NopHooks) Miss(string)                 {}
func (NopHooks) ProducerError(string, error) {}
func (NopHooks) SelfHeal(string, string)     {}
func (NopHooks) Invalidated(string)          {}
