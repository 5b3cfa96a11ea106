package lessons

// Lesson is one practice unit: four authored phase specs plus an optional
// skill token awarded on completion. Lesson content is immutable once loaded.
type Lesson struct {
	ID      string `json:"id"`
	ClassID string `json:"class_id,omitempty"`
	Title   string `json:"title"`

	Context ContextSpec `json:"context"`
	Attempt AttemptSpec `json:"attempt"`
	Mirror  MirrorSpec  `json:"mirror"`
	Retry   RetrySpec   `json:"retry"`

	Token *TokenSpec `json:"token,omitempty"`
}

// ContextSpec is the phase-A content: an opening line and the questions
// the learner answers before touching the partner.
type ContextSpec struct {
	Opening          string   `json:"opening"`
	ContextQuestions []string `json:"context_questions"`
}

// AttemptSpec is the phase-B content. BehaviorHints script how the partner
// should misbehave; ExpectedFriction names what the learner will run into.
type AttemptSpec struct {
	Challenge        string   `json:"challenge"`
	BehaviorHints    []string `json:"behavior_hints"`
	ExpectedFriction []string `json:"expected_friction"`
}

// MirrorSpec is the phase-C content. TargetPattern names the interaction
// pattern this lesson is designed to surface (see the patterns package).
type MirrorSpec struct {
	ReflectionPrompts []string `json:"reflection_prompts"`
	Alternatives      []string `json:"alternatives"`
	TargetPattern     string   `json:"target_pattern"`
}

// RetrySpec is the phase-D content.
type RetrySpec struct {
	RetryContext   string `json:"retry_context"`
	SkillFocus     string `json:"skill_focus"`
	DeeperQuestion string `json:"deeper_question"`
}

// TokenSpec describes the skill token a lesson awards on completion.
type TokenSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
