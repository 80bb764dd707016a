package ports

import (
	"context"
	"time"
)

// LoginEvent records a successful authentication.
type LoginEvent struct {
	UserID string
	Email  string
	At     time.Time
}

// LoginRecorder persists login events.
type LoginRecorder interface {
	Process(ctx context.Context, event LoginEvent) error
}

// LoginQueue accepts login events for asynchronous recording.
type LoginQueue interface {
	Enqueue(event LoginEvent)
}
