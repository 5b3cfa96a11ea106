package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aidojo/internal/practice"
	"github.com/abhisek/aidojo/internal/router"
	"github.com/abhisek/aidojo/internal/screen"
	"github.com/abhisek/aidojo/internal/screens/home"
	"github.com/abhisek/aidojo/internal/ui/layout"
)

// Options carries the wired collaborators into the TUI.
type Options struct {
	Engine *practice.Engine
	User   *practice.UserContext
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	user   *practice.UserContext
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Engine, opts.User)
	return AppModel{
		router: router.New(homeScreen),
		user:   opts.User,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens that own esc (confirm dialogs, inputs) see it first;
			// the router only pops when the active screen passed on it.
			if m.router.Depth() > 1 && !activeHandlesEsc(m.router.Active()) {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escHandler is implemented by screens that want esc delivered to them
// instead of triggering the default pop.
type escHandler interface {
	WantsEsc() bool
}

func activeHandlesEsc(s screen.Screen) bool {
	if h, ok := s.(escHandler); ok {
		return h.WantsEsc()
	}
	return false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	partnerName := ""
	if m.user != nil {
		partnerName = m.user.Profile.PersonalityID
	}
	tokenCount := 0
	if m.user != nil {
		tokenCount = len(m.user.Profile.Tokens)
	}
	header := layout.RenderHeader(title, tokenCount, partnerName, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
