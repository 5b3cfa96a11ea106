package patterns

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func hasType(ts []Type, want Type) bool {
	for _, t := range ts {
		if t == want {
			return true
		}
	}
	return false
}

func TestMatchChat_GaveUpEarly(t *testing.T) {
	matched := MatchChat("ship it whatever", ChatContext{})
	if !hasType(matched, GaveUpEarly) {
		t.Errorf("short message should match gave_up_early, got %v", matched)
	}

	long := strings.Repeat("still thinking about this one ", 3)
	if hasType(MatchChat(long, ChatContext{}), GaveUpEarly) {
		t.Error("long message should not match gave_up_early")
	}
}

func TestMatchChat_AskedClarifying(t *testing.T) {
	matched := MatchChat("what exactly do you mean by idempotent here?", ChatContext{})
	if !hasType(matched, AskedClarifying) {
		t.Errorf("question should match asked_clarifying, got %v", matched)
	}
}

func TestMatchChat_PushedFurther(t *testing.T) {
	long := strings.Repeat("here is more detail about the constraint ", 3)

	matched := MatchChat(long, ChatContext{AvgLen: 95})
	if !hasType(matched, PushedFurther) {
		t.Errorf("long message continuing a long-average session should match pushed_further, got %v", matched)
	}

	// Long message but short session average: no match.
	if hasType(MatchChat(long, ChatContext{AvgLen: 40}), PushedFurther) {
		t.Error("short session average should not match pushed_further")
	}

	// Long average but short message: no match.
	if hasType(MatchChat("and one more thing to consider", ChatContext{AvgLen: 95}), PushedFurther) {
		t.Error("short message should not match pushed_further")
	}
}

func TestMatchChat_VerifiedOutput(t *testing.T) {
	matched := MatchChat("I checked the numbers against the source and they hold up", ChatContext{})
	if !hasType(matched, VerifiedOutput) {
		t.Errorf("verification language should match verified_output, got %v", matched)
	}
}

func TestMatchChat_AcceptedFirst(t *testing.T) {
	matched := MatchChat("ok sounds good", ChatContext{FollowsReply: true})
	if !hasType(matched, AcceptedFirst) {
		t.Errorf("quick agreement after a reply should match accepted_first, got %v", matched)
	}

	if hasType(MatchChat("ok sounds good", ChatContext{FollowsReply: false}), AcceptedFirst) {
		t.Error("agreement without a preceding reply should not match accepted_first")
	}
}

func TestMatchChat_MultipleMatches(t *testing.T) {
	// Short AND contains a question mark.
	matched := MatchChat("why though?", ChatContext{})
	if !hasType(matched, GaveUpEarly) || !hasType(matched, AskedClarifying) {
		t.Errorf("expected both gave_up_early and asked_clarifying, got %v", matched)
	}
}

func TestMatchReflection(t *testing.T) {
	matched := MatchReflection("I disagree with what it claimed about caching, that was wrong")
	if !hasType(matched, NoticedInconsistency) {
		t.Errorf("disagreement should match noticed_inconsistency, got %v", matched)
	}

	if len(MatchReflection("it went fine, I learned to slow down")) != 0 {
		t.Error("neutral reflection should match nothing")
	}
}

func TestStatsRecord_Monotonic(t *testing.T) {
	s := make(Stats)
	now := time.Now()

	s.Record(AskedClarifying, "what does that mean?", now)
	s.Record(AskedClarifying, "which version?", now)

	if got := s.Count(AskedClarifying); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	if got := s.Count(GaveUpEarly); got != 0 {
		t.Errorf("unrecorded type count = %d, want 0", got)
	}
}

func TestStatsRecord_WindowBounds(t *testing.T) {
	s := make(Stats)
	now := time.Now()

	for i := 0; i < 8; i++ {
		s.Record(VerifiedOutput, fmt.Sprintf("example %d", i), now)
	}

	r := s[VerifiedOutput]
	if r.Count != 8 {
		t.Errorf("count = %d, want 8", r.Count)
	}
	if len(r.Examples) != MaxExamples {
		t.Fatalf("window size = %d, want %d", len(r.Examples), MaxExamples)
	}
	if r.Examples[0] != "example 3" || r.Examples[4] != "example 7" {
		t.Errorf("window should hold the most recent examples, got %v", r.Examples)
	}
}

func TestStatsRecord_TruncatesExamples(t *testing.T) {
	s := make(Stats)
	long := strings.Repeat("x", 300)

	s.Record(PushedFurther, long, time.Now())

	got := s[PushedFurther].Examples[0]
	if len(got) != ExampleTruncateLen {
		t.Errorf("example length = %d, want %d", len(got), ExampleTruncateLen)
	}
}

func TestStatsRecord_TruncatesOnRuneBoundary(t *testing.T) {
	s := make(Stats)
	// Multibyte runes straddle the byte cap; the cut must not split one.
	long := strings.Repeat("日本語テキスト", 20)

	s.Record(PushedFurther, long, time.Now())

	got := s[PushedFurther].Examples[0]
	if !utf8.ValidString(got) {
		t.Errorf("truncated example is not valid UTF-8: %q", got)
	}
	if len(got) > ExampleTruncateLen {
		t.Errorf("example length = %d, want at most %d", len(got), ExampleTruncateLen)
	}
	if !strings.HasPrefix(long, got) {
		t.Error("truncated example should be a prefix of the original")
	}
}
