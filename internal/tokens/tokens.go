// Package tokens manages the durable skill-token records a learner earns
// by completing lessons.
package tokens

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aidojo/internal/lessons"
)

// SkillToken is one earned achievement. The collection is append-only;
// tokens are never revoked.
type SkillToken struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
	Context     string    `json:"context,omitempty"`
	LessonID    string    `json:"lesson_id,omitempty"`
	ClassID     string    `json:"class_id,omitempty"`
}

// HasForLesson reports whether a token for the lesson already exists.
func HasForLesson(existing []SkillToken, lessonID string) bool {
	for _, t := range existing {
		if t.LessonID == lessonID {
			return true
		}
	}
	return false
}

// Award mints a token for a completed lesson. Completion is idempotent:
// re-completing a lesson after a restart never duplicates its token, so
// the second return value reports whether a token was actually minted.
func Award(existing []SkillToken, lesson lessons.Lesson, context string, now time.Time) (*SkillToken, bool) {
	if lesson.Token == nil {
		return nil, false
	}
	if HasForLesson(existing, lesson.ID) {
		return nil, false
	}

	return &SkillToken{
		ID:          uuid.New().String(),
		Name:        lesson.Token.Name,
		Description: lesson.Token.Description,
		EarnedAt:    now,
		Context:     context,
		LessonID:    lesson.ID,
		ClassID:     lesson.ClassID,
	}, true
}
