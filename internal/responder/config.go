package responder

import "time"

// Config controls reply shaping and the simulated thinking delay.
type Config struct {
	// PrefixChance is the probability of prepending a stylistic prefix.
	PrefixChance float64

	// CreepScale converts the personality's feature-creep dial into the
	// probability of appending a scope-expanding line.
	CreepScale float64

	// LowConfidence is the confidence dial below which uncertainty
	// phrasing can replace the stylistic prefix.
	LowConfidence float64

	// MinDelay and MaxDelay bound the simulated thinking time. The delay
	// is a presentation contract: callers schedule it without blocking,
	// the generator itself never sleeps.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns the standard reply-shaping settings.
func DefaultConfig() Config {
	return Config{
		PrefixChance:  0.3,
		CreepScale:    0.25,
		LowConfidence: 0.5,
		MinDelay:      600 * time.Millisecond,
		MaxDelay:      2200 * time.Millisecond,
	}
}
