// Package memory is an in-process store with per-entry expiry. Useful as a
// default for tests and single-process deployments; entries do not survive
// restarts and are not shared across processes.
package memory

import (
	"context"
	"sync"
	"time"

	st "github.com/unkn0wn-root/cacheproxy/store"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no expiry
}

// Store keeps entries in a mutex-guarded map. Expired entries are dropped
// lazily on read and by an optional background sweeper.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ st.Store = (*Store)(nil)

// New creates a memory store. If sweepInterval > 0, a background goroutine
// prunes expired entries on that cadence; Close stops it.
func New(sweepInterval time.Duration) *Store {
	s := &Store{entries: make(map[string]entry)}
	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.sweep()
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

func (s *Store) Fetch(ctx context.Context, key string, ttl time.Duration, compute st.ComputeFunc) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok && (e.exp.IsZero() || time.Now().Before(e.exp)) {
		return e.v, nil
	}

	b, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{v: b, exp: exp}
	s.mu.Unlock()
	return b, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) sweep() {
	now := time.Now()
	s.mu.Lock()
	for k, e := range s.entries {
		if !e.exp.IsZero() && e.exp.Before(now) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
}

// Len reports live (unexpired) entries. Diagnostics only.
func (s *Store) Len() int {
	now := time.Now()
	n := 0
	s.mu.RLock()
	for _, e := range s.entries {
		if e.exp.IsZero() || e.exp.After(now) {
			n++
		}
	}
	s.mu.RUnlock()
	return n
}

func (s *Store) Close(context.Context) error {
	s.once.Do(func() {
		if s.stopCh != nil {
			close(s.stopCh)
			s.ticker.Stop()
			s.wg.Wait()
		}
	})
	return nil
}
