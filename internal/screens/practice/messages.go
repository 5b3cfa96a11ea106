package practice

import (
	prac "github.com/abhisek/aidojo/internal/practice"
	"github.com/abhisek/aidojo/internal/store"
)

// sessionReadyMsg is sent when the lesson session has been opened or resumed.
type sessionReadyMsg struct {
	Progress *store.LessonProgress
	Err      error
}

// contextSubmittedMsg is sent after the phase-A answers were submitted.
type contextSubmittedMsg struct {
	Progress *store.LessonProgress
	Err      error
}

// messageSentMsg is sent after a chat message was accepted by the engine.
type messageSentMsg struct {
	Result *prac.SendResult
	Err    error
}

// replyDueMsg fires when a scheduled partner reply's delay has elapsed.
type replyDueMsg struct {
	Reply *prac.PendingReply
}

// replyDeliveredMsg is sent after a reply landed (or was discarded as stale).
type replyDeliveredMsg struct {
	Progress *store.LessonProgress
	Stale    bool
	Err      error
}

// reflectionSavedMsg is sent after the mirror reflection was stored.
type reflectionSavedMsg struct {
	Progress *store.LessonProgress
	Err      error
}

// phaseAdvancedMsg is sent after a phase transition attempt.
type phaseAdvancedMsg struct {
	Progress *store.LessonProgress
	Err      error
}

// lessonCompletedMsg is sent when the lesson finished.
type lessonCompletedMsg struct {
	Result *prac.CompletionResult
	Err    error
}

// lessonRestartedMsg is sent after a restart wiped the session.
type lessonRestartedMsg struct {
	Progress *store.LessonProgress
	Err      error
}

// personaSwitchedMsg is sent after cycling to the next partner personality.
type personaSwitchedMsg struct {
	Err error
}
