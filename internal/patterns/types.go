// Package patterns recognizes recurring behaviors in learner messages and
// accumulates them across the user's lifetime. Counters only ever grow;
// the sole reset path is an explicit user-data wipe.
package patterns

// Type identifies one recognized interaction pattern.
type Type string

const (
	GaveUpEarly          Type = "gave_up_early"
	AcceptedFirst        Type = "accepted_first"
	AskedClarifying      Type = "asked_clarifying"
	PushedFurther        Type = "pushed_further"
	VerifiedOutput       Type = "verified_output"
	NoticedInconsistency Type = "noticed_inconsistency"
)

// AllTypes returns every pattern type in display order.
func AllTypes() []Type {
	return []Type{
		GaveUpEarly, AcceptedFirst, AskedClarifying,
		PushedFurther, VerifiedOutput, NoticedInconsistency,
	}
}

// Valid reports whether t is a known pattern type.
func (t Type) Valid() bool {
	switch t {
	case GaveUpEarly, AcceptedFirst, AskedClarifying,
		PushedFurther, VerifiedOutput, NoticedInconsistency:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the pattern.
func (t Type) DisplayName() string {
	switch t {
	case GaveUpEarly:
		return "Gave up early"
	case AcceptedFirst:
		return "Accepted first answer"
	case AskedClarifying:
		return "Asked clarifying questions"
	case PushedFurther:
		return "Pushed further"
	case VerifiedOutput:
		return "Verified output"
	case NoticedInconsistency:
		return "Noticed inconsistencies"
	}
	return string(t)
}
