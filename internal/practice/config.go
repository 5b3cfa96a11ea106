package practice

import "time"

// Config holds the transition guards and pacing knobs for the practice loop.
type Config struct {
	// MinProblemLen / MinContextLen gate leaving the context phase.
	MinProblemLen int
	MinContextLen int

	// MinReflectionLen gates leaving the mirror phase.
	MinReflectionLen int

	// FeedbackEvery is the user-message cadence for micro-feedback during
	// chat phases.
	FeedbackEvery int

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig returns the standard guard thresholds.
func DefaultConfig() Config {
	return Config{
		MinProblemLen:    10,
		MinContextLen:    20,
		MinReflectionLen: 20,
		FeedbackEvery:    3,
	}
}
