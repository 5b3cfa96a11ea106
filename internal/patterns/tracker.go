package patterns

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxExamples bounds the rolling example window per pattern.
	MaxExamples = 5

	// ExampleTruncateLen is the stored length cap for example text.
	ExampleTruncateLen = 80

	// shortMessageLen is the gave-up-early threshold.
	shortMessageLen = 20

	// longMessageLen is the pushed-further threshold, applied to both the
	// session average and the current message.
	longMessageLen = 80
)

// Record holds the lifetime accumulation for one pattern type.
type Record struct {
	Count    int       `json:"count"`
	Examples []string  `json:"examples,omitempty"`
	LastSeen time.Time `json:"last_seen,omitzero"`
}

// Stats is the full per-user pattern accumulation, serialized into the
// profile blob.
type Stats map[Type]*Record

// Record increments the counter for t and pushes a truncated example into
// the bounded window, evicting the oldest entry past MaxExamples.
func (s Stats) Record(t Type, example string, now time.Time) {
	r := s[t]
	if r == nil {
		r = &Record{}
		s[t] = r
	}
	r.Count++
	r.LastSeen = now

	r.Examples = append(r.Examples, truncateExample(example))
	if len(r.Examples) > MaxExamples {
		r.Examples = r.Examples[len(r.Examples)-MaxExamples:]
	}
}

// truncateExample caps the example at ExampleTruncateLen bytes, backing
// up to a rune boundary so the stored string stays valid UTF-8.
func truncateExample(s string) string {
	if len(s) <= ExampleTruncateLen {
		return s
	}
	cut := ExampleTruncateLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Count returns the lifetime count for t.
func (s Stats) Count(t Type) int {
	if r := s[t]; r != nil {
		return r.Count
	}
	return 0
}

// ChatContext carries the session-to-date signals the chat rules need.
// The caller computes these from the live progress history; the rules
// themselves stay pure.
type ChatContext struct {
	// AvgLen is the average user-message length so far this session,
	// including the message being matched.
	AvgLen float64

	// FollowsReply is true when the message directly follows a partner
	// reply, which is when quick agreement means accepting the first answer.
	FollowsReply bool
}

var agreementOpeners = []string{
	"ok", "okay", "sure", "fine", "sounds good", "looks good",
	"great", "perfect", "thanks", "thank you", "yes", "yep",
}

var verifyMarkers = []string{
	"i checked", "i tested", "i verified", "i ran", "i tried it",
	"i confirmed", "i double-checked",
}

var disagreementMarkers = []string{
	"disagree", "that was wrong", "was incorrect", "not true",
	"didn't match", "doesn't match", "contradict", "inconsisten",
	"that's not what", "not what you said", "you said earlier",
}

// MatchChat evaluates the chat-phase rules against one user message.
// Rules are independent; a message may match zero, one, or several types.
func MatchChat(message string, ctx ChatContext) []Type {
	var matched []Type
	trimmed := strings.TrimSpace(message)
	lower := strings.ToLower(trimmed)

	if len(trimmed) < shortMessageLen {
		matched = append(matched, GaveUpEarly)
	}

	if ctx.FollowsReply && isAgreement(lower) {
		matched = append(matched, AcceptedFirst)
	}

	if strings.Contains(trimmed, "?") {
		matched = append(matched, AskedClarifying)
	}

	if ctx.AvgLen > longMessageLen && len(trimmed) > longMessageLen {
		matched = append(matched, PushedFurther)
	}

	if containsAny(lower, verifyMarkers) {
		matched = append(matched, VerifiedOutput)
	}

	return matched
}

// MatchReflection evaluates the mirror-phase rule against reflection text:
// naming a disagreement with a prior partner claim counts as noticing an
// inconsistency.
func MatchReflection(text string) []Type {
	lower := strings.ToLower(text)
	if containsAny(lower, disagreementMarkers) {
		return []Type{NoticedInconsistency}
	}
	return nil
}

// isAgreement reports whether a short message is a bare acceptance.
func isAgreement(lower string) bool {
	if len(lower) > 40 {
		return false
	}
	for _, opener := range agreementOpeners {
		if lower == opener || strings.HasPrefix(lower, opener+" ") ||
			strings.HasPrefix(lower, opener+",") || strings.HasPrefix(lower, opener+".") ||
			strings.HasPrefix(lower, opener+"!") {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
