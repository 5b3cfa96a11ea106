package persona

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown personality ids. An unknown id is a
// configuration error and must surface to the caller; nothing in this
// package substitutes a default behind the user's back.
var ErrNotFound = errors.New("personality not found")

// DefaultID is the personality selected for a fresh profile.
const DefaultID = "intern"

// Registry is the fixed personality table.
type Registry struct {
	byID  map[string]Personality
	order []string
}

// NewRegistry returns the registry of built-in personalities.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]Personality)}
	for _, p := range builtins() {
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Get returns the personality with the given id.
func (r *Registry) Get(id string) (Personality, error) {
	p, ok := r.byID[id]
	if !ok {
		return Personality{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

// All returns every personality in display order.
func (r *Registry) All() []Personality {
	out := make([]Personality, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// NextID returns the id following the given one in display order,
// wrapping around. Used by the UI to cycle personalities.
func (r *Registry) NextID(id string) string {
	for i, cur := range r.order {
		if cur == id {
			return r.order[(i+1)%len(r.order)]
		}
	}
	return r.order[0]
}

func builtins() []Personality {
	return []Personality{
		{
			ID:      "intern",
			Name:    "The Eager Intern",
			Tagline: "Ships fast, ships extra",
			Icon:    "🚀",
			Profile: Profile{
				Challenge:    0.1,
				Clarify:      0.2,
				AltSuggest:   0.5,
				Confidence:   0.8,
				FeatureCreep: 0.9,
			},
			Pools: Pools{
				Helpful: []string{
					"Done! I went with the simplest version that works.",
					"Here you go. I kept it close to what you described.",
					"That's handled — small change, easy to undo if you hate it.",
					"Finished. I followed your description step by step.",
				},
				Vague: []string{
					"Yeah, I can do something like that, give me a sec.",
					"Should be doable, there are a couple of ways to go.",
					"I roughed something out, we can tighten it later.",
					"It mostly works, a few edges might need attention.",
				},
				Challenging: []string{
					"Honestly? I think you're underestimating this part.",
					"We could do that, but it fights the rest of the design.",
					"Are you sure that's the part worth spending time on?",
				},
				Wrong: []string{
					"Easy — that setting lives in the global config, always has.",
					"That library handles retries automatically, you don't need any of this.",
					"The default timeout is 30 seconds, so this can never hang.",
					"Those two calls are equivalent, pick whichever reads better.",
				},
				Clarifying: []string{
					"Quick check — when you say %q, which part matters most?",
					"Before I run with this: is %q the whole ask, or the first step?",
					"One question: does %q need to work for the old data too?",
				},
				Prefixes: []string{
					"Oh, fun —",
					"On it.",
					"Love this one.",
				},
				Uncertainty: []string{
					"I think, anyway —",
					"Don't quote me, but",
				},
				Creep: []string{
					"While I was in there I also added a settings panel, hope that's cool.",
					"I went ahead and wired up dark mode too, it was right there.",
					"Also threw in export-to-CSV since the data was already shaped for it.",
					"Bonus: I added keyboard shortcuts. You didn't ask, but you'll want them.",
				},
			},
		},
		{
			ID:      "pedant",
			Name:    "The Careful Pedant",
			Tagline: "Will not move until the question is exact",
			Icon:    "🔍",
			Profile: Profile{
				Challenge:    0.3,
				Clarify:      0.9,
				AltSuggest:   0.3,
				Confidence:   0.4,
				FeatureCreep: 0.05,
			},
			Pools: Pools{
				Helpful: []string{
					"Here is exactly what you asked for, nothing more.",
					"Done, scoped precisely to your last message.",
					"Completed as specified. I noted one assumption at the end.",
				},
				Vague: []string{
					"There are several defensible interpretations here.",
					"It depends on constraints you haven't stated yet.",
					"I can proceed, though the requirements are underdetermined.",
				},
				Challenging: []string{
					"Your last two messages contradict each other — which one wins?",
					"You've asked for speed and safety; you only get one. Choose.",
					"That requirement is untestable as phrased. How would we know it works?",
				},
				Wrong: []string{
					"By definition, %q cannot apply here, so we can skip that case.",
					"The standard requires the strict interpretation, so your version is invalid.",
					"That edge case is impossible given the constraints you stated.",
				},
				Clarifying: []string{
					"Define %q, please — I can think of three readings.",
					"When you say %q, do you mean the current behavior or the desired one?",
					"Is %q a requirement or a preference? It changes the approach.",
					"What should happen in the empty case? You haven't said.",
				},
				Prefixes: []string{
					"To be precise:",
					"Strictly speaking,",
					"For the record,",
				},
				Uncertainty: []string{
					"I'm not fully certain, but",
					"Tentatively —",
					"With low confidence:",
				},
				Creep: []string{
					"I also documented the two adjacent cases, since precision demanded it.",
				},
			},
		},
		{
			ID:      "maverick",
			Name:    "The Confident Maverick",
			Tagline: "Never in doubt, occasionally right",
			Icon:    "😎",
			Profile: Profile{
				Challenge:    0.8,
				Clarify:      0.1,
				AltSuggest:   0.7,
				Confidence:   0.95,
				FeatureCreep: 0.4,
			},
			Pools: Pools{
				Helpful: []string{
					"Done. This is the right way to do it, trust me.",
					"Handled — and I took the fast path, because it's also the correct one.",
					"There. Clean, fast, and exactly how the pros do it.",
				},
				Vague: []string{
					"It's basically done, the rest is just details.",
					"This pattern always works, no need to overthink it.",
					"You'll see when it runs. It'll be fine.",
				},
				Challenging: []string{
					"That's the wrong problem. The real issue is one layer down.",
					"You don't need that feature, you need to delete half the existing ones.",
					"I'd throw this plan out. Want to hear the better one?",
					"Everyone asks for that; nobody needs it. What's the actual goal?",
				},
				Wrong: []string{
					"That operation is atomic, there's no race here, guaranteed.",
					"Caching this is always safe — the data basically never changes.",
					"You can skip the validation, the upstream already does it.",
					"This scales linearly, I've seen it handle a hundred times the load.",
				},
				Clarifying: []string{
					"Fine, one question, make it count: what does %q actually get you?",
					"Before I solve the real problem — why do you think %q matters?",
				},
				Prefixes: []string{
					"Look,",
					"Trust me on this:",
					"Easy.",
				},
				Uncertainty: []string{
					"I'd bet money on this, but",
				},
				Creep: []string{
					"I also refactored the surrounding mess. You're welcome.",
					"Swapped in the better algorithm while I was at it.",
				},
			},
		},
		{
			ID:      "genie",
			Name:    "The Literal Genie",
			Tagline: "Grants exactly what you asked, not what you meant",
			Icon:    "🧞",
			Profile: Profile{
				Challenge:    0.1,
				Clarify:      0.15,
				AltSuggest:   0.1,
				Confidence:   0.7,
				FeatureCreep: 0.1,
			},
			Pools: Pools{
				Helpful: []string{
					"As requested. Exactly as requested.",
					"Your words, implemented verbatim.",
					"Done — I matched your phrasing precisely.",
				},
				Vague: []string{
					"I did the thing your message described.",
					"It does what you said. Whether that's what you want is another matter.",
					"Complete, for the definition of complete in your last message.",
				},
				Challenging: []string{
					"I can do that literally, but you should hear how it sounds first.",
					"Granted as asked. Notice anything missing? You didn't mention it.",
				},
				Wrong: []string{
					"You said all users, so the admin accounts are gone too.",
					"You asked for the fastest option, so durability is off now.",
					"Sorted alphabetically, as requested — 10 comes before 9, naturally.",
				},
				Clarifying: []string{
					"You said %q. Should I take that literally?",
					"%q — by that, do you mean precisely that?",
				},
				Prefixes: []string{
					"As you wish.",
					"Granted.",
					"Literally:",
				},
				Uncertainty: []string{
					"Your phrasing permits doubt, but",
				},
				Creep: []string{
					"I also did the other thing your sentence accidentally implied.",
				},
			},
		},
	}
}
