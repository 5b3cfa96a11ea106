package tokens

import (
	"testing"
	"time"

	"github.com/abhisek/aidojo/internal/lessons"
)

func tokenLesson() lessons.Lesson {
	return lessons.Lesson{
		ID:      "scope-creep",
		ClassID: "foundations",
		Token:   &lessons.TokenSpec{Name: "Line Holder", Description: "Held the line."},
	}
}

func TestAward(t *testing.T) {
	now := time.Now()

	tok, minted := Award(nil, tokenLesson(), "first completion", now)
	if !minted {
		t.Fatal("expected a token to be minted")
	}
	if tok.Name != "Line Holder" || tok.LessonID != "scope-creep" || tok.ClassID != "foundations" {
		t.Errorf("token fields wrong: %+v", tok)
	}
	if tok.ID == "" {
		t.Error("token has no id")
	}
	if !tok.EarnedAt.Equal(now) {
		t.Errorf("earned at %v, want %v", tok.EarnedAt, now)
	}
}

func TestAward_Idempotent(t *testing.T) {
	now := time.Now()

	first, _ := Award(nil, tokenLesson(), "", now)
	existing := []SkillToken{*first}

	second, minted := Award(existing, tokenLesson(), "", now.Add(time.Hour))
	if minted || second != nil {
		t.Error("re-completing a lesson must not mint a second token")
	}
}

func TestAward_NoTokenSpec(t *testing.T) {
	l := lessons.Lesson{ID: "tokenless"}
	tok, minted := Award(nil, l, "", time.Now())
	if minted || tok != nil {
		t.Error("lesson without a token spec must not mint anything")
	}
}

func TestHasForLesson(t *testing.T) {
	existing := []SkillToken{{LessonID: "a"}, {LessonID: "b"}}
	if !HasForLesson(existing, "a") {
		t.Error("expected token for lesson a")
	}
	if HasForLesson(existing, "c") {
		t.Error("did not expect token for lesson c")
	}
}
