package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aidojo/internal/lessons"
	"github.com/abhisek/aidojo/internal/store"
	"github.com/abhisek/aidojo/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.progress == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Opening lesson...")
	}
	if s.confirmRestart {
		return renderRestartConfirm(width)
	}
	if s.result != nil {
		return s.renderCompleted(width)
	}

	switch s.progress.Phase {
	case lessons.PhaseContext:
		return s.renderContext(width)
	case lessons.PhaseAttempt, lessons.PhaseRetry:
		return s.renderChat(width, height)
	case lessons.PhaseMirror:
		return s.renderMirror(width)
	}
	return ""
}

// renderContext shows the opening plus the current context question.
func (s *PracticeScreen) renderContext(width int) string {
	var b strings.Builder

	b.WriteString(s.renderPhaseLine(width, "Phase 1 of 4 — Context"))
	b.WriteString("\n\n")

	opening := s.lesson.Context.Opening
	b.WriteString(wrapCentered(opening, width, theme.Body))
	b.WriteString("\n\n")

	question := contextPlaceholder(s.lesson, s.contextStep)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("%d. %s", s.contextStep+1, question)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))

	if s.guardMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.guardMsg))
	}

	return b.String()
}

// renderChat shows the attempt/retry transcript with the input at the bottom.
func (s *PracticeScreen) renderChat(width, height int) string {
	var b strings.Builder

	label := "Phase 2 of 4 — First Attempt"
	brief := s.lesson.Attempt.Challenge
	if s.progress.Phase == lessons.PhaseRetry {
		label = "Phase 4 of 4 — Retry"
		brief = s.lesson.Retry.RetryContext
	}
	b.WriteString(s.renderPhaseLine(width, label))
	b.WriteString("\n")
	b.WriteString(wrapCentered(brief, width, theme.Hint))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	// Transcript: show as many of the latest messages as fit.
	msgs := phaseMessages(s.progress.Messages, s.progress.Phase)
	budget := height - 10
	if budget < 4 {
		budget = 4
	}
	lines := renderTranscript(msgs, width, budget)
	b.WriteString(lines)
	b.WriteString("\n")

	if s.waiting {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("  partner is thinking..."))
		b.WriteString("\n")
	}

	if s.feedback != nil {
		b.WriteString(theme.FeedbackNote.Render("  ✦ " + s.feedback.Text))
		b.WriteString("\n")
	}
	if s.guardMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.guardMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  > " + s.input.View())

	return b.String()
}

// renderMirror shows the reflection prompts and target pattern framing.
func (s *PracticeScreen) renderMirror(width int) string {
	var b strings.Builder

	b.WriteString(s.renderPhaseLine(width, "Phase 3 of 4 — Mirror"))
	b.WriteString("\n\n")

	for _, prompt := range s.lesson.Mirror.ReflectionPrompts {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render("  • " + prompt))
		b.WriteString("\n")
	}
	if len(s.lesson.Mirror.Alternatives) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Things you could have tried:"))
		b.WriteString("\n")
		for _, alt := range s.lesson.Mirror.Alternatives {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("    - " + alt))
			b.WriteString("\n")
		}
	}

	if s.progress.Reflection != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("  Your reflection so far:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(max(width-6, 20)).
			Render("  " + s.progress.Reflection))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  > " + s.input.View())

	if s.guardMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.guardMsg))
	}

	return b.String()
}

// renderCompleted shows the depth reached and any token earned.
func (s *PracticeScreen) renderCompleted(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Bold(true).
		Render("Lesson complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Engagement depth: %s", s.result.Depth.DisplayName())))
	b.WriteString("\n")

	if s.result.Token != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("⬡ Skill token earned: %s", s.result.Token.Name)))
		b.WriteString("\n")
		b.WriteString(wrapCentered(s.result.Token.Description, width, theme.Subtitle))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to return to the dojo"))

	return b.String()
}

func (s *PracticeScreen) renderPhaseLine(width int, label string) string {
	return "  " + theme.PhaseBadge.Render(label)
}

// phaseMessages filters the transcript to the current chat phase.
func phaseMessages(msgs []store.ChatMessage, phase lessons.Phase) []store.ChatMessage {
	var out []store.ChatMessage
	for _, m := range msgs {
		if m.Phase == phase && !m.IsReflection {
			out = append(out, m)
		}
	}
	return out
}

// renderTranscript renders the newest messages that fit the line budget.
func renderTranscript(msgs []store.ChatMessage, width, budget int) string {
	textWidth := max(width-12, 20)

	var rendered []string
	total := 0
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		var line string
		if m.Role == store.RoleUser {
			line = theme.UserBubble.Render("  You: ") +
				lipgloss.NewStyle().Foreground(theme.Text).Width(textWidth).Render(m.Text)
		} else {
			line = theme.PartnerBubble.Render("  Partner: ") +
				lipgloss.NewStyle().Foreground(theme.TextDim).Width(textWidth).Render(m.Text)
		}
		h := lipgloss.Height(line)
		if total+h > budget && len(rendered) > 0 {
			break
		}
		total += h
		rendered = append([]string{line}, rendered...)
	}

	if len(rendered) == 0 {
		return theme.Hint.Render("  Say something to get started.")
	}
	return strings.Join(rendered, "\n")
}

func renderRestartConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Restart this lesson from the top?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("The chat and answers are wiped. Earned tokens stay."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, start over"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func wrapCentered(text string, width int, style lipgloss.Style) string {
	wrapped := style.Width(min(width-8, 72)).Render(text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, wrapped)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
