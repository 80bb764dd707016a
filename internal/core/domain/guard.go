package domain

// GuardState is the route guard's view of a session.
type GuardState string

const (
	GuardPending         GuardState = "pending"
	GuardAuthenticated   GuardState = "authenticated"
	GuardUnauthenticated GuardState = "unauthenticated"
)

// validGuardTransitions defines the allowed guard state machine transitions.
var validGuardTransitions = map[GuardState][]GuardState{
	GuardPending:         {GuardPending, GuardAuthenticated, GuardUnauthenticated},
	GuardAuthenticated:   {GuardAuthenticated, GuardUnauthenticated},
	GuardUnauthenticated: {GuardUnauthenticated, GuardAuthenticated},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s GuardState) CanTransitionTo(next GuardState) bool {
	for _, allowed := range validGuardTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
