package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aidojo/internal/lessons"
	prac "github.com/abhisek/aidojo/internal/practice"
	"github.com/abhisek/aidojo/internal/router"
	"github.com/abhisek/aidojo/internal/screen"
	"github.com/abhisek/aidojo/internal/store"
	"github.com/abhisek/aidojo/internal/ui/components"
	"github.com/abhisek/aidojo/internal/ui/layout"
)

// PracticeScreen drives one lesson through the four-phase loop.
type PracticeScreen struct {
	eng    *prac.Engine
	uc     *prac.UserContext
	lesson lessons.Lesson

	progress *store.LessonProgress
	input    components.TextInput

	// contextStep walks the phase-A questions: 0 = problem, 1 = context.
	contextStep    int
	problemAnswer  string
	waiting        bool
	feedback       *prac.Feedback
	result         *prac.CompletionResult
	guardMsg       string
	errMsg         string
	confirmRestart bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// WantsEsc keeps esc in-screen so the restart confirm can use it and a
// mid-lesson exit still goes through this screen (progress is saved).
func (s *PracticeScreen) WantsEsc() bool { return true }

// New creates a practice screen for the lesson.
func New(eng *prac.Engine, uc *prac.UserContext, lesson lessons.Lesson) *PracticeScreen {
	return &PracticeScreen{
		eng:    eng,
		uc:     uc,
		lesson: lesson,
		input:  components.NewTextInput("Describe the problem...", 500),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(
		s.openSession(),
		s.input.Init(),
	)
}

func (s *PracticeScreen) Title() string {
	return s.lesson.Title
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.confirmRestart {
		return []layout.KeyHint{
			{Key: "Y", Description: "Restart lesson"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to dojo"},
		}
	}
	if s.progress == nil {
		return nil
	}
	switch s.progress.Phase {
	case lessons.PhaseContext:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Back"},
		}
	case lessons.PhaseAttempt:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Ctrl+N", Description: "To mirror"},
			{Key: "Ctrl+P", Description: "Switch partner"},
			{Key: "Ctrl+R", Description: "Restart"},
		}
	case lessons.PhaseMirror:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save reflection"},
			{Key: "Ctrl+N", Description: "To retry"},
		}
	case lessons.PhaseRetry:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Ctrl+D", Description: "Finish lesson"},
			{Key: "Ctrl+P", Description: "Switch partner"},
			{Key: "Ctrl+R", Description: "Restart"},
		}
	}
	return nil
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.progress = msg.Progress
		s.syncInputForPhase()
		return s, nil

	case contextSubmittedMsg:
		return s.handleContextSubmitted(msg)

	case messageSentMsg:
		return s.handleMessageSent(msg)

	case replyDueMsg:
		return s, s.deliverReply(msg.Reply)

	case replyDeliveredMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if !msg.Stale {
			s.progress = msg.Progress
		}
		return s, nil

	case reflectionSavedMsg:
		if msg.Err != nil {
			return s, s.applyGuard(msg.Err)
		}
		s.progress = msg.Progress
		// Reflection saved; immediately try the mirror exit guard.
		return s, s.advancePhase()

	case phaseAdvancedMsg:
		if msg.Err != nil {
			return s, s.applyGuard(msg.Err)
		}
		s.progress = msg.Progress
		s.feedback = nil
		s.guardMsg = ""
		s.syncInputForPhase()
		return s, s.input.Init()

	case lessonCompletedMsg:
		if msg.Err != nil {
			return s, s.applyGuard(msg.Err)
		}
		s.result = msg.Result
		s.progress = msg.Result.Progress
		return s, nil

	case lessonRestartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.progress = msg.Progress
		s.contextStep = 0
		s.problemAnswer = ""
		s.waiting = false
		s.feedback = nil
		s.guardMsg = ""
		s.syncInputForPhase()
		return s, s.input.Init()

	case personaSwitchedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.result != nil {
		if key == "enter" || key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if s.progress == nil {
		return s, nil
	}

	if s.confirmRestart {
		switch key {
		case "y", "Y":
			s.confirmRestart = false
			return s, s.restartLesson()
		case "n", "N", "esc":
			s.confirmRestart = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		// Leave mid-lesson; everything is saved, resume from home.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "ctrl+r":
		if s.progress.Phase.Chat() {
			s.confirmRestart = true
			return s, nil
		}
	case "ctrl+p":
		if s.progress.Phase.Chat() {
			return s, s.cyclePersona()
		}
	case "ctrl+n":
		switch s.progress.Phase {
		case lessons.PhaseAttempt:
			return s, s.advancePhase()
		case lessons.PhaseMirror:
			// Save whatever is typed first so the guard sees it.
			if v := s.input.Value(); v != "" {
				return s, s.saveReflection(v)
			}
			return s, s.advancePhase()
		}
	case "ctrl+d":
		if s.progress.Phase == lessons.PhaseRetry {
			return s, s.completeLesson()
		}
	case "enter":
		return s.handleEnter()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PracticeScreen) handleEnter() (screen.Screen, tea.Cmd) {
	value := s.input.Value()
	if value == "" {
		return s, nil
	}

	switch s.progress.Phase {
	case lessons.PhaseContext:
		if s.contextStep == 0 {
			s.problemAnswer = value
			s.contextStep = 1
			s.guardMsg = ""
			s.input = components.NewTextInput(contextPlaceholder(s.lesson, 1), 500)
			return s, s.input.Init()
		}
		return s, s.submitContext(s.problemAnswer, value)

	case lessons.PhaseAttempt, lessons.PhaseRetry:
		if s.waiting {
			// One exchange at a time keeps replies readable; the engine
			// would order them anyway.
			return s, nil
		}
		return s, s.sendMessage(value)

	case lessons.PhaseMirror:
		return s, s.saveReflection(value)
	}
	return s, nil
}

func (s *PracticeScreen) handleContextSubmitted(msg contextSubmittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var ve *prac.ValidationError
		if errors.As(msg.Err, &ve) {
			s.guardMsg = ve.Message
			if ve.Constraint == "problem_too_short" {
				// Send the learner back to the first question.
				s.contextStep = 0
				s.input = components.NewTextInput(contextPlaceholder(s.lesson, 0), 500)
				s.input.Model.SetValue(s.problemAnswer)
				return s, s.input.Init()
			}
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.progress = msg.Progress
	s.guardMsg = ""
	s.syncInputForPhase()
	return s, s.input.Init()
}

func (s *PracticeScreen) handleMessageSent(msg messageSentMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		return s, s.applyGuard(msg.Err)
	}

	s.progress = msg.Result.Progress
	s.feedback = msg.Result.Feedback
	s.waiting = true
	s.input.Reset()

	reply := msg.Result.Reply
	return s, tea.Tick(reply.Delay, func(time.Time) tea.Msg {
		return replyDueMsg{Reply: reply}
	})
}

// applyGuard turns a validation failure into an inline hint; anything else
// is a hard error.
func (s *PracticeScreen) applyGuard(err error) tea.Cmd {
	var ve *prac.ValidationError
	if errors.As(err, &ve) {
		s.guardMsg = ve.Message
		return nil
	}
	s.errMsg = err.Error()
	return nil
}

// syncInputForPhase swaps the input placeholder to match the phase.
func (s *PracticeScreen) syncInputForPhase() {
	if s.progress == nil {
		return
	}
	switch s.progress.Phase {
	case lessons.PhaseContext:
		s.input = components.NewTextInput(contextPlaceholder(s.lesson, s.contextStep), 500)
	case lessons.PhaseAttempt, lessons.PhaseRetry:
		s.input = components.NewTextInput("Message your partner...", 500)
	case lessons.PhaseMirror:
		s.input = components.NewTextInput("What did you notice about how you worked?", 500)
	}
}

func contextPlaceholder(lesson lessons.Lesson, step int) string {
	qs := lesson.Context.ContextQuestions
	if step < len(qs) {
		return qs[step]
	}
	if step == 0 {
		return "What do you want built?"
	}
	return "What's the context around it?"
}

func (s *PracticeScreen) openSession() tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.StartLesson(context.Background(), s.uc, s.lesson.ID)
		return sessionReadyMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) submitContext(problem, problemContext string) tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.SubmitContext(context.Background(), s.uc, s.lesson.ID, problem, problemContext)
		return contextSubmittedMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		res, err := s.eng.SendMessage(context.Background(), s.uc, s.lesson.ID, text)
		return messageSentMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) deliverReply(reply *prac.PendingReply) tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.DeliverReply(context.Background(), reply)
		if errors.Is(err, prac.ErrStaleReply) {
			return replyDeliveredMsg{Stale: true}
		}
		return replyDeliveredMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) saveReflection(text string) tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.SaveReflection(context.Background(), s.uc, s.lesson.ID, text)
		return reflectionSavedMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) advancePhase() tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.AdvancePhase(context.Background(), s.uc, s.lesson.ID)
		return phaseAdvancedMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) completeLesson() tea.Cmd {
	return func() tea.Msg {
		res, err := s.eng.CompleteLesson(context.Background(), s.uc, s.lesson.ID)
		return lessonCompletedMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) restartLesson() tea.Cmd {
	return func() tea.Msg {
		p, err := s.eng.RestartLesson(context.Background(), s.uc, s.lesson.ID)
		return lessonRestartedMsg{Progress: p, Err: err}
	}
}

func (s *PracticeScreen) cyclePersona() tea.Cmd {
	next := s.eng.Personas().NextID(s.uc.Profile.PersonalityID)
	return func() tea.Msg {
		err := s.eng.SelectPersonality(context.Background(), s.uc, next)
		return personaSwitchedMsg{Err: err}
	}
}
