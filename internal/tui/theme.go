package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/maya/billfold/internal/domain"
)

// Theme is a named color palette. All styles derive from the active
// theme; switching rebuilds them.
type Theme struct {
	Name string

	Primary lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
}

// DarkTheme is the default palette.
func DarkTheme() Theme {
	return Theme{
		Name:    "dark",
		Primary: lipgloss.Color("#7C5DFA"),
		Accent:  lipgloss.Color("#9277FF"),
		Muted:   lipgloss.Color("#888EB0"),
		Success: lipgloss.Color("#33D69F"),
		Warning: lipgloss.Color("#FF8F00"),
		Error:   lipgloss.Color("#EC5757"),
		Border:  lipgloss.Color("#252945"),
		Text:    lipgloss.Color("#FFFFFF"),
		Subtle:  lipgloss.Color("#DFE3FA"),
	}
}

// LightTheme mirrors the dark palette on a light background.
func LightTheme() Theme {
	return Theme{
		Name:    "light",
		Primary: lipgloss.Color("#7C5DFA"),
		Accent:  lipgloss.Color("#9277FF"),
		Muted:   lipgloss.Color("#888EB0"),
		Success: lipgloss.Color("#33D69F"),
		Warning: lipgloss.Color("#FF8F00"),
		Error:   lipgloss.Color("#EC5757"),
		Border:  lipgloss.Color("#DFE3FA"),
		Text:    lipgloss.Color("#0C0E16"),
		Subtle:  lipgloss.Color("#7E88C3"),
	}
}

var theme = DarkTheme()

// Styles rebuilt from the active theme by applyTheme.
var (
	titleStyle     lipgloss.Style
	subtitleStyle  lipgloss.Style
	helpStyle      lipgloss.Style
	selectedStyle  lipgloss.Style
	headerStyle    lipgloss.Style
	footerStyle    lipgloss.Style
	errorStyle     lipgloss.Style
	warningStyle   lipgloss.Style
	successStyle   lipgloss.Style
	amountStyle    lipgloss.Style
	appBorderStyle lipgloss.Style

	statusPaidStyle    lipgloss.Style
	statusPendingStyle lipgloss.Style
	statusDraftStyle   lipgloss.Style
)

func init() {
	applyTheme(theme)
}

func applyTheme(t Theme) {
	theme = t

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	subtitleStyle = lipgloss.NewStyle().Foreground(t.Muted)
	helpStyle = lipgloss.NewStyle().Foreground(t.Subtle)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(t.Primary).Foreground(lipgloss.Color("#FFFFFF"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(t.Subtle).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	amountStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	appBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2)

	statusPaidStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	statusPendingStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	statusDraftStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Muted)
}

// SetTheme switches the active palette by name; unknown names fall back
// to dark.
func SetTheme(name string) {
	if name == "light" {
		applyTheme(LightTheme())
		return
	}
	applyTheme(DarkTheme())
}

// ActiveTheme returns the name of the active palette.
func ActiveTheme() string {
	return theme.Name
}

// statusStyle picks the badge style for an invoice status.
func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusPaid:
		return statusPaidStyle
	case domain.StatusPending:
		return statusPendingStyle
	default:
		return statusDraftStyle
	}
}
