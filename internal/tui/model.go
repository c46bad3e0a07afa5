package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maya/billfold/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenForm
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "Invoices"
	case ScreenDetail:
		return "Invoice"
	case ScreenForm:
		return "Invoice Form"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// InputCapturer is implemented by screens that capture keyboard input
// (e.g. text forms). When active, global keys (quit, settings) are
// suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// Model is the root Bubble Tea model: it owns the screens and routes
// messages between them.
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	list     tea.Model
	detail   tea.Model
	form     tea.Model
	settings tea.Model

	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenList,
		list:          NewListModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenDetail:
		return m.detail
	case ScreenForm:
		return m.form
	case ScreenSettings:
		return m.settings
	default:
		return m.list
	}
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys and messages to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Settings):
				if m.currentScreen != ScreenSettings {
					if m.settings == nil {
						m.settings = NewSettingsModel(m.app)
					}
					m.currentScreen = ScreenSettings
					return m, m.settings.Init()
				}
			}
		}

	case openDetailMsg:
		m.detail = NewDetailModel(m.app, msg.id)
		m.currentScreen = ScreenDetail
		return m, m.detail.Init()

	case openFormMsg:
		m.form = NewFormModel(m.app, msg.invoice)
		m.currentScreen = ScreenForm
		return m, m.form.Init()

	case backToListMsg:
		m.currentScreen = ScreenList
		m.form = nil
		m.detail = nil
		// Let the list pick up the status line
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenDetail:
		if m.detail != nil {
			m.detail, cmd = m.detail.Update(msg)
		}
	case ScreenForm:
		if m.form != nil {
			m.form, cmd = m.form.Update(msg)
		}
	case ScreenSettings:
		if m.settings != nil {
			m.settings, cmd = m.settings.Update(msg)
		}
	default:
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("billfold - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[N]ew  [F]ilter  [M]ore  [,] Settings  [Q]uit")

	var content string
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	} else {
		content = "Loading..."
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = errorStyle.Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	SetTheme(a.Config.UI.Theme)
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
