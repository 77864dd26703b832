package cacheproxy

import (
	"context"
	"fmt"
	"reflect"
	"time"

	c "github.com/unkn0wn-root/cacheproxy/codec"
	"github.com/unkn0wn-root/cacheproxy/internal/keys"
	"github.com/unkn0wn-root/cacheproxy/internal/wire"
	st "github.com/unkn0wn-root/cacheproxy/store"
)

const defaultTTL = 10 * time.Minute

type proxy struct {
	store    st.Store
	producer Producer
	key      string
	ttl      time.Duration
	codec    c.Codec
	log      Logger
	hooks    Hooks
}

func newProxy(opts Options) (*proxy, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("cacheproxy: store is required")
	}
	if opts.Producer == nil {
		return nil, fmt.Errorf("cacheproxy: producer is required")
	}

	p := &proxy{
		store:    opts.Store,
		producer: opts.Producer,
	}

	// defaults
	p.log = coalesce[Logger](opts.Logger, NopLogger{})
	p.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	p.ttl = coalesce[time.Duration](opts.TTL, defaultTTL)
	if opts.Codec != nil {
		p.codec = opts.Codec
	} else {
		p.codec = c.Msgpack{}
	}

	fragment := opts.Key
	if fragment == "" {
		fragment = keys.Token()
		p.log.Warn("no key fragment supplied; derived key is unstable across process restarts",
			Fields{"token": fragment})
	}
	p.key = keys.Derive(fragment, reflect.TypeOf(*p).String())
	return p, nil
}

func (p *proxy) Key() string { return p.key }

func (p *proxy) Resolve(ctx context.Context) (any, error) {
	for attempt := 0; ; attempt++ {
		computed := false
		raw, err := p.store.Fetch(ctx, p.key, p.ttl, func(ctx context.Context) ([]byte, error) {
			computed = true
			return p.populate(ctx)
		})
		if err != nil {
			return nil, err
		}
		if computed {
			p.hooks.Miss(p.key)
		} else {
			p.hooks.Hit(p.key)
		}

		reason := "frame"
		payload, err := wire.Decode(raw)
		if err == nil {
			reason = "decode"
			var tree any
			if tree, err = p.codec.Decode(payload); err == nil {
				return Deserialize(tree), nil
			}
		}

		// A freshly populated entry decodes by construction; failing here
		// means the stored bytes are foreign or corrupt. Drop the entry and
		// recompute once.
		if computed || attempt > 0 {
			return nil, fmt.Errorf("cacheproxy: read back %q: %w", p.key, err)
		}
		p.hooks.SelfHeal(p.key, reason)
		p.log.Warn("stored entry unreadable; deleting and recomputing",
			Fields{"key": p.key, "reason": reason, "err": err})
		if derr := p.store.Delete(ctx, p.key); derr != nil {
			return nil, fmt.Errorf("cacheproxy: self-heal delete %q: %w", p.key, derr)
		}
	}
}

// populate runs the producer and returns the framed, codec-encoded
// structural form. Called by the store only on miss; an error here aborts
// the fetch with nothing written.
func (p *proxy) populate(ctx context.Context) ([]byte, error) {
	v, err := p.producer(ctx)
	if err != nil {
		p.hooks.ProducerError(p.key, err)
		return nil, fmt.Errorf("cacheproxy: producer for %q: %w", p.key, err)
	}
	payload, err := p.codec.Encode(Serialize(v))
	if err != nil {
		return nil, fmt.Errorf("cacheproxy: encode for %q: %w", p.key, err)
	}
	p.log.Debug("populated", Fields{"key": p.key, "ttl": p.ttl, "bytes": len(payload)})
	return wire.Encode(payload), nil
}

func (p *proxy) Invoke(ctx context.Context, op string, args ...any) (any, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return invokeOn(v, op, args)
}

func (p *proxy) Describe(ctx context.Context) (string, error) {
	v, err := p.Resolve(ctx)
	if err != nil {
		return "", err
	}
	return describeValue(v), nil
}

func (p *proxy) Invalidate(ctx context.Context) error {
	if err := p.store.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("cacheproxy: invalidate %q: %w", p.key, err)
	}
	p.hooks.Invalidated(p.key)
	p.log.Debug("invalidated", Fields{"key": p.key})
	return nil
}
