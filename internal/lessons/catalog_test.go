package lessons

import (
	"errors"
	"testing"
)

func TestCatalogGet(t *testing.T) {
	c := NewCatalog()

	l, err := c.Get("scope-creep")
	if err != nil {
		t.Fatalf("Get(scope-creep): %v", err)
	}
	if l.Title == "" {
		t.Error("built-in lesson has empty title")
	}
	if l.Token == nil {
		t.Error("built-in lesson has no token spec")
	}
}

func TestCatalogGet_UnknownID(t *testing.T) {
	c := NewCatalog()

	_, err := c.Get("no-such-lesson")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogAll_StableOrder(t *testing.T) {
	c := NewCatalog()

	first := c.All()
	second := c.All()
	if len(first) == 0 {
		t.Fatal("catalog is empty")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("order not stable at %d: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCatalogAdd_RejectsDuplicates(t *testing.T) {
	c := NewCatalog()

	err := c.Add([]Lesson{{ID: "scope-creep", Title: "Impostor"}})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}

	// Original content untouched.
	l, _ := c.Get("scope-creep")
	if l.Title == "Impostor" {
		t.Error("duplicate add overwrote built-in lesson")
	}
}

func TestBuiltinLessons_Complete(t *testing.T) {
	for _, l := range builtinLessons() {
		if l.ID == "" || l.Title == "" {
			t.Errorf("lesson missing id or title: %+v", l)
		}
		if len(l.Context.ContextQuestions) == 0 {
			t.Errorf("lesson %q has no context questions", l.ID)
		}
		if l.Attempt.Challenge == "" {
			t.Errorf("lesson %q has no challenge", l.ID)
		}
		if len(l.Mirror.ReflectionPrompts) == 0 {
			t.Errorf("lesson %q has no reflection prompts", l.ID)
		}
		if l.Retry.RetryContext == "" || l.Retry.SkillFocus == "" {
			t.Errorf("lesson %q has incomplete retry spec", l.ID)
		}
	}
}

func TestPhaseOrdering(t *testing.T) {
	order := []Phase{PhaseContext, PhaseAttempt, PhaseMirror, PhaseRetry, PhaseCompleted}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("phase %q should rank above %q", order[i], order[i-1])
		}
	}

	if PhaseContext.Next() != PhaseAttempt {
		t.Errorf("a should advance to b, got %q", PhaseContext.Next())
	}
	if PhaseRetry.Next() != PhaseCompleted {
		t.Errorf("d should advance to completed, got %q", PhaseRetry.Next())
	}
	if PhaseCompleted.Next() != PhaseCompleted {
		t.Errorf("completed should have no successor, got %q", PhaseCompleted.Next())
	}

	if Phase("x").Valid() {
		t.Error("unknown phase token reported valid")
	}
	if !PhaseAttempt.Chat() || !PhaseRetry.Chat() {
		t.Error("b and d should be chat phases")
	}
	if PhaseContext.Chat() || PhaseMirror.Chat() {
		t.Error("a and c should not be chat phases")
	}
}
