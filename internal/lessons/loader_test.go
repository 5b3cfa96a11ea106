package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPack = `{
  "lessons": [
    {
      "id": "rubber-duck",
      "title": "Explaining Before Asking",
      "context": {
        "opening": "Bring a bug you haven't solved.",
        "context_questions": ["What have you already ruled out?"]
      },
      "attempt": {
        "challenge": "Get help without handing over the thinking.",
        "behavior_hints": ["Jumps to solutions before understanding"],
        "expected_friction": ["Premature fixes sound authoritative"]
      },
      "mirror": {
        "reflection_prompts": ["Did the partner understand the bug before fixing it?"],
        "alternatives": ["Make the partner restate the problem first"],
        "target_pattern": "asked_clarifying"
      },
      "retry": {
        "retry_context": "Same bug, but the partner must restate it before suggesting anything.",
        "skill_focus": "Shared understanding",
        "deeper_question": "How do you know the partner understood?"
      },
      "token": {"name": "Duck Whisperer", "description": "Held the thinking while using the help."}
    }
  ]
}`

func TestParsePack_Valid(t *testing.T) {
	ls, err := ParsePack([]byte(validPack))
	require.NoError(t, err)
	require.Len(t, ls, 1)

	assert.Equal(t, "rubber-duck", ls[0].ID)
	assert.Equal(t, "asked_clarifying", ls[0].Mirror.TargetPattern)
	require.NotNil(t, ls[0].Token)
	assert.Equal(t, "Duck Whisperer", ls[0].Token.Name)
}

func TestParsePack_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"lessons": [`},
		{"empty lessons", `{"lessons": []}`},
		{"missing retry", `{"lessons": [{"id": "x", "title": "X",
			"context": {"opening": "o", "context_questions": ["q"]},
			"attempt": {"challenge": "c"},
			"mirror": {"reflection_prompts": ["p"]}}]}`},
		{"bad id pattern", `{"lessons": [{"id": "Bad ID!", "title": "X",
			"context": {"opening": "o", "context_questions": ["q"]},
			"attempt": {"challenge": "c"},
			"mirror": {"reflection_prompts": ["p"]},
			"retry": {"retry_context": "r", "skill_focus": "s"}}]}`},
		{"unknown target pattern", `{"lessons": [{"id": "x", "title": "X",
			"context": {"opening": "o", "context_questions": ["q"]},
			"attempt": {"challenge": "c"},
			"mirror": {"reflection_prompts": ["p"], "target_pattern": "telepathy"},
			"retry": {"retry_context": "r", "skill_focus": "s"}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePack([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParsePack_DuplicateIDs(t *testing.T) {
	raw := `{"lessons": [
		{"id": "x", "title": "One",
			"context": {"opening": "o", "context_questions": ["q"]},
			"attempt": {"challenge": "c"},
			"mirror": {"reflection_prompts": ["p"]},
			"retry": {"retry_context": "r", "skill_focus": "s"}},
		{"id": "x", "title": "Two",
			"context": {"opening": "o", "context_questions": ["q"]},
			"attempt": {"challenge": "c"},
			"mirror": {"reflection_prompts": ["p"]},
			"retry": {"retry_context": "r", "skill_focus": "s"}}
	]}`

	_, err := ParsePack([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate lesson id")
}
