package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/moderndash/dashboard/internal/core/ports"
)

type recordingRecorder struct {
	mu     sync.Mutex
	events []ports.LoginEvent
	done   chan struct{}
	want   int
}

func newRecordingRecorder(want int) *recordingRecorder {
	return &recordingRecorder{done: make(chan struct{}), want: want}
}

func (r *recordingRecorder) Process(_ context.Context, e ports.LoginEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if len(r.events) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_PreservesPerAccountOrder(t *testing.T) {
	rec := newRecordingRecorder(20)
	d := NewDispatcher(3, rec, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		d.Enqueue(ports.LoginEvent{Email: "admin@moderndash.com", At: base.Add(time.Duration(i) * time.Second)})
		d.Enqueue(ports.LoginEvent{Email: "user@moderndash.com", At: base.Add(time.Duration(i) * time.Second)})
	}

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not processed")
	}
	cancel()
	d.Wait()

	last := map[string]time.Time{}
	for _, e := range rec.events {
		prev, seen := last[e.Email]
		if seen {
			require.True(t, e.At.After(prev), "events for %s out of order", e.Email)
		}
		last[e.Email] = e.At
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, newRecordingRecorder(0), zerolog.Nop())
	require.Len(t, d.workers, defaultWorkers)

	idx := d.shardIndex("moderator@moderndash.com")
	for i := 0; i < 5; i++ {
		require.Equal(t, idx, d.shardIndex("moderator@moderndash.com"))
	}
}

func TestDispatcher_EnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewDispatcher(1, newRecordingRecorder(-1), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.LoginEvent{Email: "user@moderndash.com"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full worker channel")
	}
	require.Len(t, d.workers[0], channelBuffer)
}
