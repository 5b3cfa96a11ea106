package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aidojo/internal/depth"
	"github.com/abhisek/aidojo/internal/lessons"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProgress(lessonID string) *LessonProgress {
	return &LessonProgress{
		LessonID: lessonID,
		ClassID:  "foundations",
		Phase:    lessons.PhaseAttempt,
		Epoch:    1,
		Problem:  "My app adds login",
		Context:  "I didn't ask for authentication",
		Messages: []ChatMessage{
			{ID: "m1", Role: RoleUser, Text: "build it", Phase: lessons.PhaseAttempt, Timestamp: time.Now().UTC()},
			{ID: "m2", Role: RoleAssistant, Text: "done, plus extras", Phase: lessons.PhaseAttempt, PersonaID: "intern", Timestamp: time.Now().UTC()},
		},
		StartedAt: time.Now().UTC().Add(-time.Hour),
	}
}

func TestProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	in := sampleProgress("scope-creep")
	require.NoError(t, repo.Save(ctx, in))

	out, err := repo.Load(ctx, "scope-creep")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, in.LessonID, out.LessonID)
	assert.Equal(t, in.ClassID, out.ClassID)
	assert.Equal(t, in.Phase, out.Phase)
	assert.Equal(t, in.Epoch, out.Epoch)
	assert.Equal(t, in.Problem, out.Problem)
	assert.Equal(t, in.Context, out.Context)
	require.Len(t, out.Messages, 2)
	assert.Equal(t, RoleAssistant, out.Messages[1].Role)
	assert.Equal(t, "intern", out.Messages[1].PersonaID)
}

func TestProgressSave_PreservesStartedAt(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	first := sampleProgress("scope-creep")
	originalStart := first.StartedAt
	require.NoError(t, repo.Save(ctx, first))

	// Second save carries a different StartedAt; the stored one wins.
	second := sampleProgress("scope-creep")
	second.StartedAt = time.Now().UTC()
	second.Phase = lessons.PhaseMirror
	require.NoError(t, repo.Save(ctx, second))

	out, err := repo.Load(ctx, "scope-creep")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.StartedAt.Equal(originalStart),
		"StartedAt changed across saves: %v vs %v", out.StartedAt, originalStart)
	assert.Equal(t, lessons.PhaseMirror, out.Phase)
}

func TestProgressLoad_Missing(t *testing.T) {
	s := openTestStore(t)

	out, err := s.ProgressRepo().Load(context.Background(), "nothing-here")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProgressLoad_CorruptedRecordDiscarded(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		`INSERT INTO lesson_progress (lesson_id, phase, data, updated_at) VALUES (?, ?, ?, ?)`,
		"broken", "b", "{not json", time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	out, err := s.ProgressRepo().Load(ctx, "broken")
	require.NoError(t, err)
	assert.Nil(t, out, "corrupted record should read as absent")

	// The corrupted row is gone; a fresh save works.
	require.NoError(t, s.ProgressRepo().Save(ctx, sampleProgress("broken")))
	out, err = s.ProgressRepo().Load(ctx, "broken")
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestProgressComplete_KeepsRecord(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleProgress("scope-creep")))
	now := time.Now().UTC()
	require.NoError(t, repo.Complete(ctx, "scope-creep", depth.Judgment, now))

	out, err := repo.Load(ctx, "scope-creep")
	require.NoError(t, err)
	require.NotNil(t, out, "Complete must not delete the record")
	assert.Equal(t, lessons.PhaseCompleted, out.Phase)
	assert.Equal(t, depth.Judgment, out.Depth)
	require.NotNil(t, out.CompletedAt)
}

func TestFindInProgress(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	id, err := repo.FindInProgress(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.Save(ctx, sampleProgress("scope-creep")))
	id, err = repo.FindInProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scope-creep", id)

	require.NoError(t, repo.Complete(ctx, "scope-creep", depth.Surface, time.Now()))
	id, err = repo.FindInProgress(ctx)
	require.NoError(t, err)
	assert.Empty(t, id, "completed lessons are not in progress")
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, out)

	p := NewProfile("pedant", time.Now().UTC())
	p.Patterns.Record("asked_clarifying", "which one?", time.Now())
	p.Completed["scope-creep"] = depth.Structure
	require.NoError(t, repo.Save(ctx, p))

	out, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "pedant", out.PersonalityID)
	assert.Equal(t, 1, out.Patterns.Count("asked_clarifying"))
	assert.Equal(t, depth.Structure, out.Completed["scope-creep"])
}

func TestEventLog(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, EventData{Kind: EventLessonStarted, LessonID: "scope-creep"}))
	require.NoError(t, repo.Append(ctx, EventData{Kind: EventPhaseAdvanced, LessonID: "scope-creep", Detail: "a->b"}))
	require.NoError(t, repo.Append(ctx, EventData{Kind: EventLessonStarted, LessonID: "vague-spec"}))

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[EventLessonStarted])
	assert.Equal(t, 1, counts[EventPhaseAdvanced])

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first, sequences strictly decreasing.
	for i := 1; i < len(recent); i++ {
		assert.Greater(t, recent[i-1].Sequence, recent[i].Sequence)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ProgressRepo().Save(ctx, sampleProgress("scope-creep")))
	require.NoError(t, s.ProfileRepo().Save(ctx, NewProfile("intern", time.Now())))
	require.NoError(t, s.EventRepo().Append(ctx, EventData{Kind: EventLessonStarted}))

	require.NoError(t, s.Wipe())

	p, err := s.ProgressRepo().Load(ctx, "scope-creep")
	require.NoError(t, err)
	assert.Nil(t, p)

	prof, err := s.ProfileRepo().Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, prof)

	counts, err := s.EventRepo().Counts(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
