package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maya/billfold/internal/app"
	"github.com/maya/billfold/internal/config"
)

// Settings field indexes (edit mode)
const (
	settingCurrency = iota
	settingPageSize
	settingPaymentTerms
	settingSenderStreet
	settingSenderCity
	settingSenderPostCode
	settingSenderCountry
	settingFieldCount
)

// settingsSavedMsg reports the result of persisting the config.
type settingsSavedMsg struct {
	err error
}

// SettingsModel shows and edits application settings. Theme toggling
// applies immediately; everything else is edited in a small form.
type SettingsModel struct {
	app *app.App

	editing  bool
	inputs   []textinput.Model
	focusIdx int
	status   string
	errMsg   string
}

// NewSettingsModel creates the settings screen
func NewSettingsModel(a *app.App) SettingsModel {
	return SettingsModel{app: a}
}

// Init implements tea.Model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// IsCapturingInput blocks global keys while the form is active
func (m SettingsModel) IsCapturingInput() bool {
	return m.editing
}

func (m *SettingsModel) beginEdit() {
	cfg := m.app.Config
	values := []struct {
		value       string
		placeholder string
		limit       int
	}{
		{cfg.UI.Currency, "currency symbol", 4},
		{strconv.Itoa(cfg.Invoices.PageSize), "invoices per page", 4},
		{strconv.Itoa(cfg.Invoices.DefaultPaymentTerms), "days", 4},
		{cfg.Sender.Street, "street address", 60},
		{cfg.Sender.City, "city", 40},
		{cfg.Sender.PostCode, "post code", 12},
		{cfg.Sender.Country, "country", 40},
	}

	m.inputs = make([]textinput.Model, settingFieldCount)
	for i, v := range values {
		ti := textinput.New()
		ti.Placeholder = v.placeholder
		ti.CharLimit = v.limit
		ti.SetValue(v.value)
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	m.focusIdx = 0
	m.editing = true
	m.errMsg = ""
	m.status = ""
}

func (m *SettingsModel) setFocus(i int) {
	n := len(m.inputs)
	if i < 0 {
		i = n - 1
	}
	i %= n
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focusIdx = i
}

func (m *SettingsModel) applyEdits() (string, bool) {
	pageSize, err := strconv.Atoi(strings.TrimSpace(m.inputs[settingPageSize].Value()))
	if err != nil || pageSize < 1 {
		return "page size must be a positive number", false
	}
	terms, err := strconv.Atoi(strings.TrimSpace(m.inputs[settingPaymentTerms].Value()))
	if err != nil || terms < 1 {
		return "default payment terms must be a positive number of days", false
	}

	cfg := m.app.Config
	cfg.UI.Currency = strings.TrimSpace(m.inputs[settingCurrency].Value())
	cfg.Invoices.PageSize = pageSize
	cfg.Invoices.DefaultPaymentTerms = terms
	cfg.Sender.Street = strings.TrimSpace(m.inputs[settingSenderStreet].Value())
	cfg.Sender.City = strings.TrimSpace(m.inputs[settingSenderCity].Value())
	cfg.Sender.PostCode = strings.TrimSpace(m.inputs[settingSenderPostCode].Value())
	cfg.Sender.Country = strings.TrimSpace(m.inputs[settingSenderCountry].Value())
	return "", true
}

func (m SettingsModel) saveCmd() tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{err: m.app.SaveConfig()}
	}
}

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("failed to save settings: %v", msg.err)
		} else {
			m.status = "Settings saved"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc":
				m.editing = false
				m.errMsg = ""
				return m, nil

			case "tab", "down":
				m.setFocus(m.focusIdx + 1)
				return m, nil

			case "shift+tab", "up":
				m.setFocus(m.focusIdx - 1)
				return m, nil

			case "enter", "ctrl+s":
				if errMsg, ok := m.applyEdits(); !ok {
					m.errMsg = errMsg
					return m, nil
				}
				m.editing = false
				m.errMsg = ""
				return m, m.saveCmd()
			}

			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, func() tea.Msg { return backToListMsg{} }

		case key.Matches(msg, DefaultKeyMap.Edit):
			m.beginEdit()
			return m, nil
		}

		switch msg.String() {
		case "t":
			// Toggle theme and persist immediately
			if ActiveTheme() == "dark" {
				SetTheme("light")
			} else {
				SetTheme("dark")
			}
			m.app.Config.UI.Theme = ActiveTheme()
			m.status = ""
			return m, m.saveCmd()
		}
	}

	return m, nil
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	if m.editing {
		labels := []string{
			"Currency", "Page Size", "Payment Terms",
			"Street", "City", "Post Code", "Country",
		}
		for i, label := range labels {
			b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-14s", label)))
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		if m.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next • enter save • esc cancel"))
		return b.String()
	}

	cfg := m.app.Config
	rows := []struct {
		label string
		value string
	}{
		{"Theme", cfg.UI.Theme},
		{"Currency", cfg.UI.Currency},
		{"Page Size", strconv.Itoa(cfg.Invoices.PageSize)},
		{"Payment Terms", fmt.Sprintf("%d days", cfg.Invoices.DefaultPaymentTerms)},
		{"Sender", renderSender(cfg)},
	}
	for _, r := range rows {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-14s", r.label)))
		b.WriteString(r.value)
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("t toggle theme • e edit • esc back"))
	return b.String()
}

func renderSender(cfg *config.Config) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{cfg.Sender.Street, cfg.Sender.City, cfg.Sender.PostCode, cfg.Sender.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}
