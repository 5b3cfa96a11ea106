// Package depth classifies how deeply a learner engaged with a lesson.
// The level is always recomputed from session signals at completion time;
// it is never mutated directly.
package depth

// Level is an ordered engagement classification.
type Level string

const (
	Surface   Level = "surface"
	Structure Level = "structure"
	Judgment  Level = "judgment"
	Fluency   Level = "fluency"
)

// AllLevels returns the levels in ascending order.
func AllLevels() []Level {
	return []Level{Surface, Structure, Judgment, Fluency}
}

// Rank returns the ordinal position of the level. Unknown levels rank
// below surface so a corrupted stored value never outranks a real one.
func (l Level) Rank() int {
	switch l {
	case Surface:
		return 0
	case Structure:
		return 1
	case Judgment:
		return 2
	case Fluency:
		return 3
	}
	return -1
}

// Above reports whether l outranks other.
func (l Level) Above(other Level) bool {
	return l.Rank() > other.Rank()
}

// DisplayName returns a human-readable label for the level.
func (l Level) DisplayName() string {
	switch l {
	case Surface:
		return "Surface"
	case Structure:
		return "Structure"
	case Judgment:
		return "Judgment"
	case Fluency:
		return "Fluency"
	}
	return string(l)
}

// Classify computes the depth level from session signals. messageCount is
// the combined user+assistant message count across the attempt and retry
// phases; reflectionLength is the mirror-phase reflection length in bytes.
// Thresholds are evaluated in descending order; the first match wins.
func Classify(messageCount int, hasReflection bool, reflectionLength int) Level {
	switch {
	case messageCount > 10 && hasReflection && reflectionLength > 50:
		return Fluency
	case messageCount > 6 && hasReflection && reflectionLength > 50:
		return Judgment
	case messageCount > 3:
		return Structure
	default:
		return Surface
	}
}
