package practice

import (
	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/patterns"
)

// FeedbackCategory orders micro-feedback by importance. When several rules
// match, the highest category wins.
type FeedbackCategory string

const (
	FeedbackMilestone   FeedbackCategory = "milestone"
	FeedbackInsight     FeedbackCategory = "insight"
	FeedbackPositive    FeedbackCategory = "positive"
	FeedbackImprovement FeedbackCategory = "improvement"
)

// Feedback is one micro-feedback nudge shown alongside the chat.
type Feedback struct {
	Category FeedbackCategory `json:"category"`
	Text     string           `json:"text"`
}

// feedbackSignals is everything the rules look at, computed by the engine
// from the live session so the rules stay pure.
type feedbackSignals struct {
	Phase          lessons.Phase
	PhaseUserCount int // user messages in the current phase, incl. this one
	TotalUserCount int // user messages across both chat phases
	AvgLen         float64
	AskedQuestion  bool
	Matched        []patterns.Type
}

type feedbackRule struct {
	category FeedbackCategory
	match    func(sig feedbackSignals) bool
	text     string
}

// feedbackRules is evaluated top to bottom; the table is sorted by
// category so the first hit is also the highest-priority one.
var feedbackRules = []feedbackRule{
	{
		category: FeedbackMilestone,
		match: func(sig feedbackSignals) bool {
			return sig.TotalUserCount >= 12
		},
		text: "A dozen messages in. This much back-and-forth is exactly the practice.",
	},
	{
		category: FeedbackMilestone,
		match: func(sig feedbackSignals) bool {
			return sig.Phase == lessons.PhaseRetry && sig.PhaseUserCount == 3
		},
		text: "Back in the ring after the mirror. This round is where the lesson lands.",
	},
	{
		category: FeedbackInsight,
		match: func(sig feedbackSignals) bool {
			return hasPattern(sig.Matched, patterns.VerifiedOutput)
		},
		text: "You checked the output instead of trusting it. Keep doing that.",
	},
	{
		category: FeedbackInsight,
		match: func(sig feedbackSignals) bool {
			return sig.AskedQuestion && sig.AvgLen > 60
		},
		text: "Your questions are getting specific. That's where the leverage is.",
	},
	{
		category: FeedbackPositive,
		match: func(sig feedbackSignals) bool {
			return hasPattern(sig.Matched, patterns.PushedFurther)
		},
		text: "You pushed past the first answer. Good instinct.",
	},
	{
		category: FeedbackPositive,
		match: func(sig feedbackSignals) bool {
			return sig.AskedQuestion && sig.Phase == lessons.PhaseAttempt
		},
		text: "Asking before accepting. That's the move.",
	},
	{
		category: FeedbackImprovement,
		match: func(sig feedbackSignals) bool {
			return sig.AvgLen < 30 && sig.PhaseUserCount > 2
		},
		text: "Your messages are running short. Give the partner more to push against.",
	},
}

// evaluateFeedback returns the highest-priority matching nudge, or nil
// when nothing applies this round.
func evaluateFeedback(sig feedbackSignals) *Feedback {
	for _, r := range feedbackRules {
		if r.match(sig) {
			return &Feedback{Category: r.category, Text: r.text}
		}
	}
	return nil
}

func hasPattern(matched []patterns.Type, want patterns.Type) bool {
	for _, t := range matched {
		if t == want {
			return true
		}
	}
	return false
}
