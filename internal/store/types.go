package store

import (
	"time"

	"github.com/abhisek/aidojo/internal/depth"
	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/patterns"
	"github.com/abhisek/aidojo/internal/tokens"
)

// SchemaVersion is written into every persisted blob so a future format
// change can tell old records apart.
const SchemaVersion = 1

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in a session's append-only chat history.
type ChatMessage struct {
	ID           string        `json:"id"`
	Role         Role          `json:"role"`
	Text         string        `json:"text"`
	Timestamp    time.Time     `json:"timestamp"`
	Phase        lessons.Phase `json:"phase"`
	PersonaID    string        `json:"persona_id,omitempty"`
	IsReflection bool          `json:"is_reflection,omitempty"`
}

// LessonProgress is the full persisted state of one attempt at one lesson.
// It is saved whole on every phase transition and every message.
type LessonProgress struct {
	Version int `json:"version"`

	LessonID string        `json:"lesson_id"`
	ClassID  string        `json:"class_id,omitempty"`
	Phase    lessons.Phase `json:"phase"`

	// Epoch distinguishes session generations: a restart bumps it, and
	// simulated replies scheduled under an older epoch are discarded.
	Epoch int `json:"epoch"`

	// NextSeq is the sequence assigned to the next scheduled reply;
	// NextDeliver is the sequence the chat expects next. Together they
	// enforce FIFO delivery of delayed replies.
	NextSeq     int `json:"next_seq"`
	NextDeliver int `json:"next_deliver"`

	// Messages is the combined attempt- and retry-phase chat history.
	Messages    []ChatMessage `json:"messages"`
	Reflections []string      `json:"reflections,omitempty"`

	// Problem and Context are the phase-A answers.
	Problem string `json:"problem,omitempty"`
	Context string `json:"context,omitempty"`

	// Reflection is the phase-C text.
	Reflection string `json:"reflection,omitempty"`

	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	Depth       depth.Level `json:"depth,omitempty"`
}

// ChatMessageCount returns the user+assistant message total for the given
// phases, the signal the depth classifier consumes.
func (p *LessonProgress) ChatMessageCount(phases ...lessons.Phase) int {
	count := 0
	for _, m := range p.Messages {
		for _, ph := range phases {
			if m.Phase == ph {
				count++
				break
			}
		}
	}
	return count
}

// Profile is the persisted per-user record: earned tokens, lifetime
// pattern counters, completed lessons, and the chosen personality.
type Profile struct {
	Version int `json:"version"`

	PersonalityID string                 `json:"personality_id"`
	Patterns      patterns.Stats         `json:"patterns"`
	Tokens        []tokens.SkillToken    `json:"tokens,omitempty"`
	Completed     map[string]depth.Level `json:"completed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProfile returns a fresh profile with the default personality.
func NewProfile(personalityID string, now time.Time) *Profile {
	return &Profile{
		Version:       SchemaVersion,
		PersonalityID: personalityID,
		Patterns:      make(patterns.Stats),
		Completed:     make(map[string]depth.Level),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
