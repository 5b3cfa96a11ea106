package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aidojo/internal/lessons"
	prac "github.com/abhisek/aidojo/internal/practice"
	"github.com/abhisek/aidojo/internal/router"
	"github.com/abhisek/aidojo/internal/screen"
	practicescreen "github.com/abhisek/aidojo/internal/screens/practice"
	"github.com/abhisek/aidojo/internal/screens/shelf"
	"github.com/abhisek/aidojo/internal/ui/components"
	"github.com/abhisek/aidojo/internal/ui/theme"
)

// HomeScreen is the dojo entrance: lesson list, token shelf, exit.
type HomeScreen struct {
	eng        *prac.Engine
	uc         *prac.UserContext
	menu       components.Menu
	tokenCount int
	inProgress string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(eng *prac.Engine, uc *prac.UserContext) *HomeScreen {
	h := &HomeScreen{
		eng:        eng,
		uc:         uc,
		tokenCount: len(uc.Profile.Tokens),
	}
	h.inProgress, _ = eng.FindInProgress(context.Background())
	h.menu = components.NewMenu(h.buildItems())
	return h
}

func (h *HomeScreen) buildItems() []components.MenuItem {
	var items []components.MenuItem

	if h.inProgress != "" {
		if lesson, err := h.eng.Catalog().Get(h.inProgress); err == nil {
			items = append(items, components.MenuItem{
				Label:  "RESUME: " + strings.ToUpper(lesson.Title),
				Detail: "picks up where you left off",
				Action: h.openLesson(lesson),
			})
		}
	}

	for _, lesson := range h.eng.Catalog().All() {
		detail := ""
		if level, done := h.uc.Profile.Completed[lesson.ID]; done {
			detail = "done · " + strings.ToLower(level.DisplayName())
		}
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(lesson.Title),
			Detail: detail,
			Action: h.openLesson(lesson),
		})
	}

	items = append(items,
		components.MenuItem{Label: "TOKEN SHELF", Action: func() tea.Cmd {
			earned := h.uc.Profile.Tokens
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: shelf.New(earned)}
			}
		}},
		components.MenuItem{Label: "LEAVE THE DOJO", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return items
}

func (h *HomeScreen) openLesson(lesson lessons.Lesson) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: practicescreen.New(h.eng, h.uc, lesson),
			}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Returning from a lesson changes tokens and completions; rebuild so
	// the list reflects them.
	if _, ok := msg.(tea.KeyMsg); ok {
		if h.tokenCount != len(h.uc.Profile.Tokens) {
			h.tokenCount = len(h.uc.Profile.Tokens)
			h.inProgress, _ = h.eng.FindInProgress(context.Background())
			selected := h.menu.Selected
			h.menu = components.NewMenu(h.buildItems())
			if selected < len(h.menu.Items) {
				h.menu.Selected = selected
			}
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("A I   D O J O")
	subtitle := theme.Subtitle.Width(width).Render("practice working with a partner that talks back")
	sections = append(sections, title, subtitle)

	// Partner line.
	if p, err := h.eng.Personas().Get(h.uc.Profile.PersonalityID); err == nil {
		partner := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("Current partner: %s %s — %s", p.Icon, p.Name, p.Tagline))
		sections = append(sections, partner)
	}

	stats := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("⬡ %d tokens   ◆ %d lessons completed",
			h.tokenCount, len(h.uc.Profile.Completed)))
	sections = append(sections, stats)

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
