package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/moderndash/dashboard/internal/core/ports"
)

func TestSnapshotStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotStore()

	if _, err := s.Load(ctx, "k"); !errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
	if err := s.Save(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("load = %q, %v", got, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound on second delete, got %v", err)
	}
}

func TestSnapshotStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, "k", []byte("v"), time.Minute)
	now = now.Add(2 * time.Minute)

	if _, err := s.Load(ctx, "k"); !errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Fatalf("expected expired snapshot to be absent, got %v", err)
	}
}

func TestSnapshotStore_SweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshotStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, "short", []byte("v"), time.Minute)
	_ = s.Save(ctx, "long", []byte("v"), time.Hour)
	_ = s.Save(ctx, "forever", []byte("v"), 0)
	now = now.Add(2 * time.Minute)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 removal, got %d", n)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries left, got %d", s.Len())
	}
	if _, err := s.Load(ctx, "long"); err != nil {
		t.Fatalf("unexpired entry lost: %v", err)
	}
}

func TestSnapshotStore_RunSweepsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSnapshotStore()
	for _, key := range []string{"a", "b", "c"} {
		_ = s.Save(ctx, key, []byte("v"), time.Millisecond)
	}

	stopped := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond, zerolog.Nop())
		close(stopped)
	}()

	deadline := time.Now().Add(time.Second)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expired entries were never swept, %d left", s.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
