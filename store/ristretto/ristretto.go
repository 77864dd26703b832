// Package ristretto backs the proxy store with an in-process Ristretto
// cache. Admission is cost-based; writes are asynchronous, so a freshly
// computed value may not be readable until the buffers drain.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	st "github.com/unkn0wn-root/cacheproxy/store"
)

type Store struct {
	c *rc.Cache
}

var _ st.Store = (*Store)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Store, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Store{c: c}, nil
}

func (s *Store) Fetch(ctx context.Context, key string, ttl time.Duration, compute st.ComputeFunc) ([]byte, error) {
	if v, ok := s.c.Get(key); ok {
		if b, _ := v.([]byte); b != nil {
			return b, nil
		}
		// drop unexpected entry shape
		s.c.Del(key)
	}
	b, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	// cost = payload size; the admission policy may still reject the write,
	// which only means the next Fetch computes again.
	s.c.SetWithTTL(key, b, int64(len(b)), ttl)
	return b, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.c.Del(key)
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.c.Wait()
	s.c.Close()
	return nil
}

// Metrics exposes the underlying cache metrics when enabled in Config.
// Not part of the store contract.
func (s *Store) Metrics() *rc.Metrics { return s.c.Metrics }
