package ports

import "time"

// Metrics receives measurements from the core services.
type Metrics interface {
	// AuthAttempt records one authentication attempt and how long it took.
	AuthAttempt(result string, elapsed time.Duration)
	// SessionRehydration records the outcome of a snapshot load.
	SessionRehydration(result string)
	// DatabaseError records a failed database call.
	DatabaseError(operation string)
}
