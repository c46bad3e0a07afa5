package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maya/billfold/internal/app"
	"github.com/maya/billfold/internal/domain"
)

// ListModel shows the paginated invoice list with a status filter.
type ListModel struct {
	app *app.App

	cursor      int
	filterIdx   int
	loadingMore bool
	ready       bool
	warn        string
	status      string
}

// NewListModel creates the invoice list screen
func NewListModel(a *app.App) ListModel {
	return ListModel{app: a}
}

// Init loads the store on first entry
func (m ListModel) Init() tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Invoices.Initialize(context.Background()); err != nil {
			return ErrorMsg{Err: err}
		}
		return storeReadyMsg{warn: m.app.Invoices.LoadError()}
	}
}

// visible returns the filtered view of the paginated subset. Filtering
// is applied on the read side; the pagination cursor is untouched.
func (m ListModel) visible() []domain.Invoice {
	return domain.FilterByStatus(m.app.Invoices.Visible(), []string{m.filter()})
}

func (m ListModel) filter() string {
	return domain.FilterOptions()[m.filterIdx]
}

func (m ListModel) loadMoreCmd() tea.Cmd {
	return func() tea.Msg {
		return loadMoreDoneMsg{err: m.app.Invoices.LoadMore(context.Background())}
	}
}

// Update implements tea.Model
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeReadyMsg:
		m.ready = true
		m.warn = msg.warn
		return m, nil

	case loadMoreDoneMsg:
		m.loadingMore = false
		if msg.err != nil {
			return m, func() tea.Msg { return ErrorMsg{Err: msg.err} }
		}
		return m, nil

	case backToListMsg:
		m.status = msg.status
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if !m.ready {
			return m, nil
		}
		m.status = ""

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}

		case key.Matches(msg, DefaultKeyMap.Select):
			if vis := m.visible(); len(vis) > 0 && m.cursor < len(vis) {
				id := vis[m.cursor].ID
				return m, func() tea.Msg { return openDetailMsg{id: id} }
			}

		case key.Matches(msg, DefaultKeyMap.New):
			return m, func() tea.Msg { return openFormMsg{invoice: nil} }

		case key.Matches(msg, DefaultKeyMap.Filter):
			m.filterIdx = (m.filterIdx + 1) % len(domain.FilterOptions())
			m.cursor = 0

		case key.Matches(msg, DefaultKeyMap.LoadMore):
			if m.app.Invoices.HasMore() && !m.loadingMore {
				m.loadingMore = true
				return m, m.loadMoreCmd()
			}
		}
	}

	return m, nil
}

func (m *ListModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model
func (m ListModel) View() string {
	if !m.ready {
		return subtitleStyle.Render("Loading invoices...")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Invoices"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("filter: %s", m.filter())))
	b.WriteString("\n")

	if m.warn != "" {
		b.WriteString(warningStyle.Render(m.warn))
		b.WriteString("\n")
	}
	if err := m.app.Invoices.SaveError(); err != nil {
		b.WriteString(warningStyle.Render(fmt.Sprintf("changes not saved: %v", err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(subtitleStyle.Render("No invoices. Press 'n' to create one."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-8s %-12s %-12s %-22s %-10s %12s",
			"ID", "DATE", "DUE", "CLIENT", "STATUS", "TOTAL")
		b.WriteString(subtitleStyle.Render(header))
		b.WriteString("\n")

		currency := m.app.Config.UI.Currency
		for i, inv := range vis {
			line := fmt.Sprintf("%-8s %-12s %-12s %-22s %-10s %12s",
				inv.ID,
				formatInvoiceDate(inv.CreatedAt),
				formatInvoiceDate(inv.PaymentDue),
				truncateStr(orPlaceholder(inv.ClientName), 22),
				inv.Status,
				formatCurrency(inv.Total, currency),
			)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("▸ " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Showing %d of %d", len(m.app.Invoices.Visible()), m.app.Invoices.Len())))
	if m.loadingMore {
		b.WriteString(subtitleStyle.Render("  loading more..."))
	} else if m.app.Invoices.HasMore() {
		b.WriteString(subtitleStyle.Render("  press 'm' for more"))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • n new • f filter • m more • , settings • q quit"))

	return b.String()
}

func orPlaceholder(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
