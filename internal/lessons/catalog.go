package lessons

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lesson id is not in the catalog.
// Unknown ids are configuration errors; there is no silent fallback lesson.
var ErrNotFound = errors.New("lesson not found")

// Catalog holds the loaded lesson set in a stable display order.
type Catalog struct {
	byID  map[string]Lesson
	order []string
}

// NewCatalog returns a catalog seeded with the built-in lessons.
func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]Lesson)}
	for _, l := range builtinLessons() {
		c.byID[l.ID] = l
		c.order = append(c.order, l.ID)
	}
	return c
}

// Get returns the lesson with the given id.
func (c *Catalog) Get(id string) (Lesson, error) {
	l, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return l, nil
}

// All returns every lesson in display order.
func (c *Catalog) All() []Lesson {
	out := make([]Lesson, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Add appends lessons to the catalog. Duplicate ids are rejected so a
// lesson pack can never shadow built-in content.
func (c *Catalog) Add(ls []Lesson) error {
	for _, l := range ls {
		if _, exists := c.byID[l.ID]; exists {
			return fmt.Errorf("duplicate lesson id %q", l.ID)
		}
		c.byID[l.ID] = l
		c.order = append(c.order, l.ID)
	}
	return nil
}

// builtinLessons returns the lessons that ship with the binary.
func builtinLessons() []Lesson {
	return []Lesson{
		{
			ID:      "scope-creep",
			ClassID: "foundations",
			Title:   "Holding the Line on Scope",
			Context: ContextSpec{
				Opening: "Pick a small feature you actually want built. Keep it tiny on purpose.",
				ContextQuestions: []string{
					"What is the one thing the feature must do?",
					"What should it explicitly NOT do?",
				},
			},
			Attempt: AttemptSpec{
				Challenge: "Ask the partner to build your feature. It will keep volunteering extras you never asked for.",
				BehaviorHints: []string{
					"Suggests adjacent features unprompted",
					"Treats silence as agreement to expand scope",
				},
				ExpectedFriction: []string{
					"Extras sound reasonable in isolation",
					"Saying no repeatedly feels rude",
				},
			},
			Mirror: MirrorSpec{
				ReflectionPrompts: []string{
					"Which extras did you accept, and why?",
					"At what message did the scope stop being yours?",
				},
				Alternatives: []string{
					"State the non-goals up front, before the first request",
					"Answer every suggestion with accept/reject, never silence",
				},
				TargetPattern: "accepted_first",
			},
			Retry: RetrySpec{
				RetryContext:   "Same feature, but open with your non-goals and hold them.",
				SkillFocus:     "Explicit scope boundaries",
				DeeperQuestion: "What would a scope boundary look like that survives ten more messages?",
			},
			Token: &TokenSpec{
				Name:        "Line Holder",
				Description: "Completed a build without absorbing a single unrequested feature.",
			},
		},
		{
			ID:      "vague-spec",
			ClassID: "foundations",
			Title:   "When the Answer Is Fog",
			Context: ContextSpec{
				Opening: "Choose a question you genuinely don't know the answer to.",
				ContextQuestions: []string{
					"What do you need the answer for?",
					"How precise does the answer need to be to be useful?",
				},
			},
			Attempt: AttemptSpec{
				Challenge: "Get a concrete, usable answer. The partner will hedge, generalize, and drift.",
				BehaviorHints: []string{
					"Replies with plausible generalities",
					"Restates the question instead of answering it",
				},
				ExpectedFriction: []string{
					"Vague answers feel like progress",
					"It is tempting to accept the third hedge",
				},
			},
			Mirror: MirrorSpec{
				ReflectionPrompts: []string{
					"Which reply did you almost accept that said nothing?",
					"What question finally forced a concrete answer?",
				},
				Alternatives: []string{
					"Ask for a number, a name, or an example — never 'more detail'",
					"Repeat the concrete ask verbatim until it is answered",
				},
				TargetPattern: "asked_clarifying",
			},
			Retry: RetrySpec{
				RetryContext:   "Same question, but every message must demand one concrete artifact.",
				SkillFocus:     "Forcing specificity",
				DeeperQuestion: "What is the smallest unit of concreteness your problem accepts?",
			},
			Token: &TokenSpec{
				Name:        "Fog Cutter",
				Description: "Extracted a concrete answer from a partner determined to hedge.",
			},
		},
		{
			ID:      "trust-but-verify",
			ClassID: "judgment",
			Title:   "Confidently Wrong",
			Context: ContextSpec{
				Opening: "Pick a topic where you can check claims yourself — something you half-know.",
				ContextQuestions: []string{
					"What claim would you be able to verify quickly?",
					"What would it cost you to act on a wrong answer here?",
				},
			},
			Attempt: AttemptSpec{
				Challenge: "Work through the topic. Some replies will be wrong, delivered with full confidence.",
				BehaviorHints: []string{
					"Mixes correct and incorrect claims at the same confidence level",
					"Doubles down politely when questioned",
				},
				ExpectedFriction: []string{
					"Confident tone suppresses the urge to check",
					"Verifying feels slower than believing",
				},
			},
			Mirror: MirrorSpec{
				ReflectionPrompts: []string{
					"Which claim did you verify, and which did you let pass?",
					"What made the wrong answer sound right?",
				},
				Alternatives: []string{
					"Verify the one claim your decision actually rests on",
					"Ask the partner what would falsify its own claim",
				},
				TargetPattern: "verified_output",
			},
			Retry: RetrySpec{
				RetryContext:   "Same topic. Check at least one claim before building on it.",
				SkillFocus:     "Targeted verification",
				DeeperQuestion: "Which claims deserve verification, and which are cheap to be wrong about?",
			},
			Token: &TokenSpec{
				Name:        "Fact Checker",
				Description: "Caught a confidently wrong claim before acting on it.",
			},
		},
		{
			ID:      "one-more-push",
			ClassID: "judgment",
			Title:   "The Draft Is Not the Deliverable",
			Context: ContextSpec{
				Opening: "Bring a piece of work you'd normally accept on the first pass.",
				ContextQuestions: []string{
					"What does 'good enough' mean for this piece of work?",
					"What usually stops you from asking for another round?",
				},
			},
			Attempt: AttemptSpec{
				Challenge: "Get a first draft, then push it through at least two real revisions.",
				BehaviorHints: []string{
					"First draft is serviceable but shallow",
					"Improves sharply when given a specific critique",
				},
				ExpectedFriction: []string{
					"The first draft looks done",
					"Critiquing requires knowing what you actually want",
				},
			},
			Mirror: MirrorSpec{
				ReflectionPrompts: []string{
					"What did revision two surface that draft one hid?",
					"Was your critique specific enough to act on?",
				},
				Alternatives: []string{
					"Name one concrete weakness per revision request",
					"Compare draft one and draft three side by side before accepting",
				},
				TargetPattern: "pushed_further",
			},
			Retry: RetrySpec{
				RetryContext:   "New piece, same discipline: no acceptance before revision two.",
				SkillFocus:     "Iteration depth",
				DeeperQuestion: "Where is the point of diminishing returns for this kind of work?",
			},
			Token: &TokenSpec{
				Name:        "Second Wind",
				Description: "Pushed past the first acceptable draft and got something better.",
			},
		},
	}
}
