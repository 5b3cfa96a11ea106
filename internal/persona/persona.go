// Package persona defines the fixed set of simulated-partner personalities.
// Each personality is a behavior profile (five dials in [0,1]) plus the
// authored text pools the responder draws from. Content is immutable.
package persona

// Profile holds the five behavior dials. All values are in [0,1].
type Profile struct {
	// Challenge is how often the partner pushes back on the learner.
	Challenge float64
	// Clarify is how often the partner asks questions before acting.
	Clarify float64
	// AltSuggest is how often the partner volunteers a different approach.
	AltSuggest float64
	// Confidence shapes hedging: low values produce uncertainty phrasing.
	Confidence float64
	// FeatureCreep is the tendency to expand scope unprompted.
	FeatureCreep float64
}

// Pools holds the authored reply text for one personality, grouped by the
// response categories the generator selects between.
type Pools struct {
	Helpful     []string
	Vague       []string
	Challenging []string
	Wrong       []string
	Clarifying  []string

	// Prefixes are stylistic openers prepended with low probability.
	Prefixes []string
	// Uncertainty phrases replace the prefix when confidence is low.
	Uncertainty []string
	// Creep lines are scope-expanding suffixes, drawn in proportion to
	// the FeatureCreep dial.
	Creep []string
}

// Personality is one named partner configuration.
type Personality struct {
	ID      string
	Name    string
	Tagline string
	Icon    string
	Profile Profile
	Pools   Pools
}
