package shelf

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aidojo/internal/router"
	"github.com/abhisek/aidojo/internal/screen"
	"github.com/abhisek/aidojo/internal/tokens"
	"github.com/abhisek/aidojo/internal/ui/layout"
	"github.com/abhisek/aidojo/internal/ui/theme"
)

// ShelfScreen displays the earned skill tokens.
type ShelfScreen struct {
	tokens       []tokens.SkillToken
	scrollOffset int
}

var _ screen.Screen = (*ShelfScreen)(nil)
var _ screen.KeyHintProvider = (*ShelfScreen)(nil)

// New creates a shelf screen over the profile's token collection.
func New(earned []tokens.SkillToken) *ShelfScreen {
	return &ShelfScreen{tokens: earned}
}

func (s *ShelfScreen) Init() tea.Cmd {
	return nil
}

func (s *ShelfScreen) Title() string {
	return "Token Shelf"
}

func (s *ShelfScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShelfScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.tokens)-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *ShelfScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nEarned: %d tokens\n", len(s.tokens))))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	if len(s.tokens) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet. Finish a lesson to earn your first token."))
		return b.String()
	}

	// Each token takes three lines; show what fits.
	maxVisible := (height - 8) / 3
	if maxVisible < 2 {
		maxVisible = 2
	}
	start := s.scrollOffset
	end := start + maxVisible
	if end > len(s.tokens) {
		end = len(s.tokens)
	}

	for i := start; i < end; i++ {
		tok := s.tokens[i]
		dateStr := tok.EarnedAt.Format("Jan 02, 2006")

		name := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("  ⬡ %s", tok.Name))
		meta := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("    %s · %s", tok.LessonID, dateStr))
		desc := lipgloss.NewStyle().Foreground(theme.Text).
			Render("    " + tok.Description)

		block := name + "\n" + desc + "\n" + meta
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(min(width-8, 64)).Render(block)))
		b.WriteString("\n")
	}

	if end < len(s.tokens) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(s.tokens)-end)))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
