package workflow

import "fmt"

// Verdict is the outcome of a transition decision.
type Verdict int

const (
	// Allow means the transition is legal and the write should proceed.
	Allow Verdict = iota
	// NoOp means current == requested. The caller still performs the write
	// so updatedAt is refreshed, but no side effect beyond the touch fires.
	NoOp
	// Reject means the transition is illegal; Decision.Reason says why.
	Reject
)

// Decision is what a TransitionPolicy hands back. Pure data, no I/O.
type Decision struct {
	Verdict Verdict
	Reason  string
}

// TransitionPolicy decides whether an entity may move between two states.
// It is a strategy so a stricter machine can replace the default without
// touching the mutation service.
type TransitionPolicy interface {
	Decide(kind Kind, current, requested string) Decision
}

// PermissivePolicy is the default: any transition between two members of the
// same enum is allowed, including backward moves and moves out of terminal
// states. This is a deliberate modeling choice — Application, Interview and
// Offer statuses carry no ordering constraint — not an omission.
type PermissivePolicy struct{}

// Decide rejects only structurally: when requested (or current) is not a
// member of kind's enum. Equal states are a NoOp.
func (PermissivePolicy) Decide(kind Kind, current, requested string) Decision {
	if !IsValidState(kind, current) {
		return Decision{Verdict: Reject, Reason: fmt.Sprintf("unknown %s state %q", kind, current)}
	}
	if !IsValidState(kind, requested) {
		return Decision{Verdict: Reject, Reason: fmt.Sprintf("unknown %s state %q", kind, requested)}
	}
	if current == requested {
		return Decision{Verdict: NoOp}
	}
	return Decision{Verdict: Allow}
}

// StrictPolicy hardens the default by refusing to leave terminal states
// (REJECTED, COMPLETED, CANCELLED, ACCEPTED, HIRED). Everything else behaves
// like PermissivePolicy. Not wired by default; swapping it in is a conscious
// behavior change covered by the service tests.
type StrictPolicy struct{}

// Decide behaves like PermissivePolicy.Decide except that a transition out of
// a terminal state is rejected.
func (StrictPolicy) Decide(kind Kind, current, requested string) Decision {
	d := PermissivePolicy{}.Decide(kind, current, requested)
	if d.Verdict != Allow {
		return d
	}
	if IsTerminal(kind, current) {
		return Decision{
			Verdict: Reject,
			Reason:  fmt.Sprintf("%s is terminal for %s, no further transition", current, kind),
		}
	}
	return d
}
