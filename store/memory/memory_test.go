package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFetchComputesOnceThenHits(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	calls := 0
	compute := func(context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}

	for i := 0; i < 3; i++ {
		b, err := s.Fetch(ctx, "k", time.Minute, compute)
		if err != nil || string(b) != "v" {
			t.Fatalf("Fetch #%d: %q, %v", i, b, err)
		}
	}
	if calls != 1 {
		t.Fatalf("compute calls = %d, want 1", calls)
	}
}

func TestFetchRecomputesAfterExpiry(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	calls := 0
	compute := func(context.Context) ([]byte, error) {
		calls++
		return []byte("v"), nil
	}

	if _, err := s.Fetch(ctx, "k", 10*time.Millisecond, compute); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := s.Fetch(ctx, "k", 10*time.Millisecond, compute); err != nil {
		t.Fatalf("Fetch after expiry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("compute calls = %d, want 2", calls)
	}
}

func TestComputeErrorNotStored(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	sentinel := errors.New("boom")
	_, err := s.Fetch(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Fetch err = %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("failed compute was stored")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := New(0)
	defer s.Close(ctx)

	_, _ = s.Fetch(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("v"), nil
	})
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("entry survived Delete")
	}
	// deleting an absent key is not an error
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete(missing): %v", err)
	}
}

func TestSweeperPrunesExpired(t *testing.T) {
	ctx := context.Background()
	s := New(5 * time.Millisecond)
	defer s.Close(ctx)

	_, _ = s.Fetch(ctx, "k", 5*time.Millisecond, func(context.Context) ([]byte, error) {
		return []byte("v"), nil
	})
	time.Sleep(30 * time.Millisecond)

	s.mu.RLock()
	_, present := s.entries["k"]
	s.mu.RUnlock()
	if present {
		t.Fatalf("sweeper left expired entry behind")
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(time.Millisecond)
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
