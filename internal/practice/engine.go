// Package practice drives the four-phase practice loop: context capture,
// first attempt, reflective mirror, retry. It owns the phase transitions
// and their guards, persists progress on every state change, and routes
// chat through the simulated partner.
package practice

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aidojo/internal/depth"
	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/patterns"
	"github.com/abhisek/aidojo/internal/persona"
	"github.com/abhisek/aidojo/internal/responder"
	"github.com/abhisek/aidojo/internal/store"
	"github.com/abhisek/aidojo/internal/tokens"
)

// UserContext carries the loaded profile through engine calls. The engine
// mutates the profile in memory and persists it; callers treat it as the
// single live copy for the process.
type UserContext struct {
	Profile *store.Profile
}

// PendingReply is a simulated reply scheduled for delayed delivery. The
// epoch, sequence, and phase pin it to the session generation, position,
// and chat phase it was created for; DeliverReply rejects anything else
// as stale.
type PendingReply struct {
	LessonID  string
	Epoch     int
	Seq       int
	Phase     lessons.Phase
	PersonaID string
	Text      string
	Delay     time.Duration
}

// SendResult is everything produced by one user message.
type SendResult struct {
	Progress *store.LessonProgress
	Reply    *PendingReply
	Feedback *Feedback
	Matched  []patterns.Type
}

// CompletionResult reports the outcome of finishing a lesson.
type CompletionResult struct {
	Progress *store.LessonProgress
	Depth    depth.Level
	Token    *tokens.SkillToken // nil when no new token was minted
}

// Engine is the session API. All methods persist their effects before
// returning, so a crash at any point resumes from the last completed step.
type Engine struct {
	personas *persona.Registry
	catalog  *lessons.Catalog
	gen      *responder.Generator
	progress store.ProgressRepo
	profiles store.ProfileRepo
	events   store.EventRepo
	cfg      Config
	now      func() time.Time
}

// New wires an Engine from its collaborators.
func New(personas *persona.Registry, catalog *lessons.Catalog, gen *responder.Generator, st *store.Store, cfg Config) *Engine {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		personas: personas,
		catalog:  catalog,
		gen:      gen,
		progress: st.ProgressRepo(),
		profiles: st.ProfileRepo(),
		events:   st.EventRepo(),
		cfg:      cfg,
		now:      now,
	}
}

// Catalog exposes the lesson catalog for listing screens.
func (e *Engine) Catalog() *lessons.Catalog { return e.catalog }

// Personas exposes the personality registry for selection screens.
func (e *Engine) Personas() *persona.Registry { return e.personas }

// LoadUser loads the stored profile, creating a fresh one with the
// default personality on first run.
func (e *Engine) LoadUser(ctx context.Context) (*UserContext, error) {
	p, err := e.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = store.NewProfile(persona.DefaultID, e.now().UTC())
		if err := e.profiles.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	return &UserContext{Profile: p}, nil
}

// SelectPersonality switches the active partner personality. Unknown ids
// are a configuration error and surface as persona.ErrNotFound.
func (e *Engine) SelectPersonality(ctx context.Context, uc *UserContext, id string) error {
	if _, err := e.personas.Get(id); err != nil {
		return err
	}
	uc.Profile.PersonalityID = id
	return e.profiles.Save(ctx, uc.Profile)
}

// FindInProgress returns the id of a resumable lesson, or "".
func (e *Engine) FindInProgress(ctx context.Context) (string, error) {
	return e.progress.FindInProgress(ctx)
}

// Progress returns the stored progress for a lesson, or nil.
func (e *Engine) Progress(ctx context.Context, lessonID string) (*store.LessonProgress, error) {
	return e.progress.Load(ctx, lessonID)
}

// StartLesson opens a session for the lesson. An unfinished session is
// resumed as-is; a completed one starts over under a new epoch.
func (e *Engine) StartLesson(ctx context.Context, uc *UserContext, lessonID string) (*store.LessonProgress, error) {
	lesson, err := e.catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}

	existing, err := e.progress.Load(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Phase != lessons.PhaseCompleted {
		return existing, nil
	}

	epoch := 1
	if existing != nil {
		epoch = existing.Epoch + 1
		if err := e.progress.Clear(ctx, lessonID); err != nil {
			return nil, err
		}
	}

	p := &store.LessonProgress{
		LessonID:  lesson.ID,
		ClassID:   lesson.ClassID,
		Phase:     lessons.PhaseContext,
		Epoch:     epoch,
		StartedAt: e.now().UTC(),
	}
	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	e.recordEvent(ctx, store.EventData{Kind: store.EventLessonStarted, LessonID: lessonID})
	return p, nil
}

// SubmitContext records the phase-A answers and advances to the attempt
// phase. Both answers must clear their minimum lengths; on failure the
// session is untouched and the returned ValidationError names the guard.
func (e *Engine) SubmitContext(ctx context.Context, uc *UserContext, lessonID, problem, problemContext string) (*store.LessonProgress, error) {
	p, err := e.loadSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if p.Phase != lessons.PhaseContext {
		return nil, validationErr("phase", "context answers belong to phase %s, session is in %s",
			lessons.PhaseContext.DisplayName(), p.Phase.DisplayName())
	}

	problem = strings.TrimSpace(problem)
	problemContext = strings.TrimSpace(problemContext)
	if len(problem) < e.cfg.MinProblemLen {
		return nil, validationErr("problem_too_short",
			"describe the problem in at least %d characters", e.cfg.MinProblemLen)
	}
	if len(problemContext) < e.cfg.MinContextLen {
		return nil, validationErr("context_too_short",
			"give at least %d characters of context", e.cfg.MinContextLen)
	}

	p.Problem = problem
	p.Context = problemContext
	p.Phase = lessons.PhaseAttempt
	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	e.recordEvent(ctx, store.EventData{Kind: store.EventPhaseAdvanced, LessonID: lessonID, Detail: "a->b"})
	return p, nil
}

// SendMessage appends a user message in a chat phase, runs pattern
// detection, and schedules the partner's reply. The reply is returned as
// a PendingReply; the caller delivers it after its delay via DeliverReply.
func (e *Engine) SendMessage(ctx context.Context, uc *UserContext, lessonID, text string) (*SendResult, error) {
	p, err := e.loadSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !p.Phase.Chat() {
		return nil, validationErr("phase", "chat is only open during %s and %s phases",
			lessons.PhaseAttempt.DisplayName(), lessons.PhaseRetry.DisplayName())
	}

	pers, err := e.personas.Get(uc.Profile.PersonalityID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	chatCtx := patterns.ChatContext{
		AvgLen:       sessionAvgLen(p.Messages, text),
		FollowsReply: lastIsAssistant(p.Messages),
	}

	p.Messages = append(p.Messages, store.ChatMessage{
		ID:        uuid.New().String(),
		Role:      store.RoleUser,
		Text:      text,
		Timestamp: now,
		Phase:     p.Phase,
	})

	matched := patterns.MatchChat(text, chatCtx)
	if len(matched) > 0 {
		for _, t := range matched {
			uc.Profile.Patterns.Record(t, text, now)
		}
		if err := e.profiles.Save(ctx, uc.Profile); err != nil {
			return nil, err
		}
	}

	replyText := e.gen.Generate(text, pers, p.Phase, history(p.Messages))
	reply := &PendingReply{
		LessonID:  lessonID,
		Epoch:     p.Epoch,
		Seq:       p.NextSeq,
		Phase:     p.Phase,
		PersonaID: pers.ID,
		Text:      replyText,
		Delay:     e.gen.Delay(),
	}
	p.NextSeq++

	var fb *Feedback
	phaseCount := userMessageCount(p.Messages, p.Phase)
	if e.cfg.FeedbackEvery > 0 && phaseCount%e.cfg.FeedbackEvery == 0 {
		fb = evaluateFeedback(feedbackSignals{
			Phase:          p.Phase,
			PhaseUserCount: phaseCount,
			TotalUserCount: userMessageCount(p.Messages, lessons.PhaseAttempt, lessons.PhaseRetry),
			AvgLen:         chatCtx.AvgLen,
			AskedQuestion:  strings.Contains(text, "?"),
			Matched:        matched,
		})
	}

	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	return &SendResult{Progress: p, Reply: reply, Feedback: fb, Matched: matched}, nil
}

// DeliverReply lands a scheduled reply into the chat. Replies deliver in
// the order they were scheduled; anything from an older epoch, out of
// sequence, or past a phase change is discarded with ErrStaleReply.
func (e *Engine) DeliverReply(ctx context.Context, reply *PendingReply) (*store.LessonProgress, error) {
	p, err := e.progress.Load(ctx, reply.LessonID)
	if err != nil {
		return nil, err
	}

	switch {
	case p == nil:
		e.discardReply(ctx, reply, "session gone")
		return nil, ErrStaleReply
	case reply.Epoch != p.Epoch:
		e.discardReply(ctx, reply, fmt.Sprintf("epoch %d, session at %d", reply.Epoch, p.Epoch))
		return nil, ErrStaleReply
	case reply.Seq != p.NextDeliver:
		e.discardReply(ctx, reply, fmt.Sprintf("seq %d, expected %d", reply.Seq, p.NextDeliver))
		return nil, ErrStaleReply
	case reply.Phase != p.Phase:
		e.discardReply(ctx, reply, fmt.Sprintf("phase %s, session at %s",
			reply.Phase.DisplayName(), p.Phase.DisplayName()))
		return nil, ErrStaleReply
	}

	p.Messages = append(p.Messages, store.ChatMessage{
		ID:        uuid.New().String(),
		Role:      store.RoleAssistant,
		Text:      reply.Text,
		Timestamp: e.now().UTC(),
		Phase:     p.Phase,
		PersonaID: reply.PersonaID,
	})
	p.NextDeliver++

	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveReflection records the mirror-phase reflection text and runs the
// reflection pattern rules. It does not advance the phase; AdvancePhase
// applies the length guard.
func (e *Engine) SaveReflection(ctx context.Context, uc *UserContext, lessonID, text string) (*store.LessonProgress, error) {
	p, err := e.loadSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if p.Phase != lessons.PhaseMirror {
		return nil, validationErr("phase", "reflection belongs to the %s phase, session is in %s",
			lessons.PhaseMirror.DisplayName(), p.Phase.DisplayName())
	}

	now := e.now().UTC()
	p.Reflection = text
	p.Reflections = append(p.Reflections, text)
	p.Messages = append(p.Messages, store.ChatMessage{
		ID:           uuid.New().String(),
		Role:         store.RoleUser,
		Text:         text,
		Timestamp:    now,
		Phase:        lessons.PhaseMirror,
		IsReflection: true,
	})

	if matched := patterns.MatchReflection(text); len(matched) > 0 {
		for _, t := range matched {
			uc.Profile.Patterns.Record(t, text, now)
		}
		if err := e.profiles.Save(ctx, uc.Profile); err != nil {
			return nil, err
		}
	}

	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AdvancePhase moves the session one phase forward, applying the guard
// for the transition. Phase A advances through SubmitContext; phase D
// finishes through CompleteLesson.
func (e *Engine) AdvancePhase(ctx context.Context, uc *UserContext, lessonID string) (*store.LessonProgress, error) {
	p, err := e.loadSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	switch p.Phase {
	case lessons.PhaseContext:
		return nil, validationErr("phase", "leave the %s phase by submitting the problem and its context",
			lessons.PhaseContext.DisplayName())
	case lessons.PhaseAttempt:
		p.Phase = lessons.PhaseMirror
	case lessons.PhaseMirror:
		if len(strings.TrimSpace(p.Reflection)) < e.cfg.MinReflectionLen {
			return nil, validationErr("reflection_too_short",
				"write at least %d characters of reflection first", e.cfg.MinReflectionLen)
		}
		p.Phase = lessons.PhaseRetry
	case lessons.PhaseRetry:
		return nil, validationErr("phase", "finish the %s phase by completing the lesson",
			lessons.PhaseRetry.DisplayName())
	default:
		return nil, validationErr("phase", "session is already %s", p.Phase.DisplayName())
	}

	// Replies still in flight belong to the phase being left. Catching
	// the delivery cursor up abandons them without stalling the FIFO for
	// the next chat phase.
	p.NextDeliver = p.NextSeq

	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	e.recordEvent(ctx, store.EventData{
		Kind: store.EventPhaseAdvanced, LessonID: lessonID,
		Detail: transitionDetail(p.Phase),
	})
	return p, nil
}

// CompleteLesson finishes a retry-phase session: classifies the depth
// reached, marks the progress record completed, and awards the lesson's
// skill token. Re-completing after a restart never duplicates the token,
// but a deeper run does raise the stored depth.
func (e *Engine) CompleteLesson(ctx context.Context, uc *UserContext, lessonID string) (*CompletionResult, error) {
	lesson, err := e.catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}
	p, err := e.loadSession(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if p.Phase != lessons.PhaseRetry {
		return nil, validationErr("phase", "only a %s-phase session can be completed, session is in %s",
			lessons.PhaseRetry.DisplayName(), p.Phase.DisplayName())
	}

	now := e.now().UTC()
	reflection := strings.TrimSpace(p.Reflection)
	level := depth.Classify(
		p.ChatMessageCount(lessons.PhaseAttempt, lessons.PhaseRetry),
		reflection != "",
		len(reflection),
	)

	if err := e.progress.Complete(ctx, lessonID, level, now); err != nil {
		return nil, err
	}
	p.Phase = lessons.PhaseCompleted
	p.CompletedAt = &now
	p.Depth = level

	if level.Above(uc.Profile.Completed[lessonID]) {
		uc.Profile.Completed[lessonID] = level
	}

	token, minted := tokens.Award(uc.Profile.Tokens, lesson, p.Problem, now)
	if minted {
		uc.Profile.Tokens = append(uc.Profile.Tokens, *token)
		e.recordEvent(ctx, store.EventData{Kind: store.EventTokenAwarded, LessonID: lessonID, Detail: token.Name})
	}
	if err := e.profiles.Save(ctx, uc.Profile); err != nil {
		return nil, err
	}

	e.recordEvent(ctx, store.EventData{Kind: store.EventLessonDone, LessonID: lessonID, Detail: string(level)})
	return &CompletionResult{Progress: p, Depth: level, Token: token}, nil
}

// RestartLesson throws the session away and reopens it at the context
// phase under a new epoch, so replies scheduled before the restart are
// discarded on delivery. Earned tokens and pattern history are untouched.
func (e *Engine) RestartLesson(ctx context.Context, uc *UserContext, lessonID string) (*store.LessonProgress, error) {
	lesson, err := e.catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}

	epoch := 1
	if existing, err := e.progress.Load(ctx, lessonID); err != nil {
		return nil, err
	} else if existing != nil {
		epoch = existing.Epoch + 1
		if err := e.progress.Clear(ctx, lessonID); err != nil {
			return nil, err
		}
	}

	p := &store.LessonProgress{
		LessonID:  lesson.ID,
		ClassID:   lesson.ClassID,
		Phase:     lessons.PhaseContext,
		Epoch:     epoch,
		StartedAt: e.now().UTC(),
	}
	if err := e.progress.Save(ctx, p); err != nil {
		return nil, err
	}
	e.recordEvent(ctx, store.EventData{Kind: store.EventLessonRestart, LessonID: lessonID})
	return p, nil
}

// loadSession loads progress that must exist.
func (e *Engine) loadSession(ctx context.Context, lessonID string) (*store.LessonProgress, error) {
	p, err := e.progress.Load(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSession, lessonID)
	}
	return p, nil
}

func (e *Engine) discardReply(ctx context.Context, reply *PendingReply, why string) {
	e.recordEvent(ctx, store.EventData{
		Kind:     store.EventReplyDiscarded,
		LessonID: reply.LessonID,
		Detail:   why,
	})
}

// recordEvent appends to the diagnostics log; failures are warned, never
// fatal, because the log is observability rather than state.
func (e *Engine) recordEvent(ctx context.Context, data store.EventData) {
	if err := e.events.Append(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: record event %s: %v\n", data.Kind, err)
	}
}

// sessionAvgLen averages the lengths of user messages so far, counting
// the message currently being sent.
func sessionAvgLen(msgs []store.ChatMessage, current string) float64 {
	total := len(strings.TrimSpace(current))
	n := 1
	for _, m := range msgs {
		if m.Role == store.RoleUser && m.Phase.Chat() {
			total += len(strings.TrimSpace(m.Text))
			n++
		}
	}
	return float64(total) / float64(n)
}

func lastIsAssistant(msgs []store.ChatMessage) bool {
	if len(msgs) == 0 {
		return false
	}
	return msgs[len(msgs)-1].Role == store.RoleAssistant
}

func userMessageCount(msgs []store.ChatMessage, phases ...lessons.Phase) int {
	n := 0
	for _, m := range msgs {
		if m.Role != store.RoleUser || m.IsReflection {
			continue
		}
		for _, ph := range phases {
			if m.Phase == ph {
				n++
				break
			}
		}
	}
	return n
}

func history(msgs []store.ChatMessage) []responder.Message {
	out := make([]responder.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.IsReflection {
			continue
		}
		out = append(out, responder.Message{Role: string(m.Role), Text: m.Text})
	}
	return out
}

func transitionDetail(to lessons.Phase) string {
	switch to {
	case lessons.PhaseMirror:
		return "b->c"
	case lessons.PhaseRetry:
		return "c->d"
	}
	return "->" + string(to)
}
