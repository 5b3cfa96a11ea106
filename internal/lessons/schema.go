package lessons

// PackSchema defines the JSON schema a lesson-pack file must satisfy.
var PackSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"lessons": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":    "string",
						"pattern": "^[a-z0-9][a-z0-9-]*$",
					},
					"class_id": map[string]any{"type": "string"},
					"title":    map[string]any{"type": "string"},
					"context": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"opening": map[string]any{"type": "string"},
							"context_questions": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 1,
							},
						},
						"required":             []any{"opening", "context_questions"},
						"additionalProperties": false,
					},
					"attempt": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"challenge": map[string]any{"type": "string"},
							"behavior_hints": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"expected_friction": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required":             []any{"challenge"},
						"additionalProperties": false,
					},
					"mirror": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"reflection_prompts": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 1,
							},
							"alternatives": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
							"target_pattern": map[string]any{
								"type": "string",
								"enum": []any{
									"gave_up_early", "accepted_first", "asked_clarifying",
									"pushed_further", "verified_output", "noticed_inconsistency",
								},
							},
						},
						"required":             []any{"reflection_prompts"},
						"additionalProperties": false,
					},
					"retry": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"retry_context":   map[string]any{"type": "string"},
							"skill_focus":     map[string]any{"type": "string"},
							"deeper_question": map[string]any{"type": "string"},
						},
						"required":             []any{"retry_context", "skill_focus"},
						"additionalProperties": false,
					},
					"token": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":        map[string]any{"type": "string"},
							"description": map[string]any{"type": "string"},
						},
						"required":             []any{"name", "description"},
						"additionalProperties": false,
					},
				},
				"required":             []any{"id", "title", "context", "attempt", "mirror", "retry"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"lessons"},
	"additionalProperties": false,
}
