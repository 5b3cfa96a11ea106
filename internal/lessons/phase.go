package lessons

// Phase identifies one stage of the four-phase practice loop.
// Values are the tokens persisted in lesson progress records.
type Phase string

const (
	PhaseContext   Phase = "a" // capture the problem and its context
	PhaseAttempt   Phase = "b" // first guided attempt against the simulated partner
	PhaseMirror    Phase = "c" // reflection on what just happened
	PhaseRetry     Phase = "d" // second attempt with sharper intent
	PhaseCompleted Phase = "completed"
)

// AllPhases returns the working phases in loop order (excludes completed).
func AllPhases() []Phase {
	return []Phase{PhaseContext, PhaseAttempt, PhaseMirror, PhaseRetry}
}

// Valid reports whether p is a known phase token.
func (p Phase) Valid() bool {
	switch p {
	case PhaseContext, PhaseAttempt, PhaseMirror, PhaseRetry, PhaseCompleted:
		return true
	}
	return false
}

// Rank returns the position of p in the loop, for forward-only checks.
// Completed ranks last; unknown phases rank below everything.
func (p Phase) Rank() int {
	switch p {
	case PhaseContext:
		return 0
	case PhaseAttempt:
		return 1
	case PhaseMirror:
		return 2
	case PhaseRetry:
		return 3
	case PhaseCompleted:
		return 4
	}
	return -1
}

// Next returns the phase that follows p in the loop.
// Completed has no successor and returns itself.
func (p Phase) Next() Phase {
	switch p {
	case PhaseContext:
		return PhaseAttempt
	case PhaseAttempt:
		return PhaseMirror
	case PhaseMirror:
		return PhaseRetry
	case PhaseRetry:
		return PhaseCompleted
	}
	return p
}

// Chat reports whether the phase carries free-form chat with the partner.
func (p Phase) Chat() bool {
	return p == PhaseAttempt || p == PhaseRetry
}

// DisplayName returns a human-readable label for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseContext:
		return "Context"
	case PhaseAttempt:
		return "Attempt"
	case PhaseMirror:
		return "Mirror"
	case PhaseRetry:
		return "Retry"
	case PhaseCompleted:
		return "Completed"
	}
	return string(p)
}
