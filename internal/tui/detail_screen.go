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

// DetailModel shows a single invoice with actions.
type DetailModel struct {
	app *app.App
	id  string

	confirming bool
	errMsg     string
}

// NewDetailModel creates the invoice detail screen
func NewDetailModel(a *app.App, id string) DetailModel {
	return DetailModel{app: a, id: id}
}

// Init implements tea.Model
func (m DetailModel) Init() tea.Cmd {
	return nil
}

// IsCapturingInput blocks global keys while the delete confirmation is up
func (m DetailModel) IsCapturingInput() bool {
	return m.confirming
}

func (m DetailModel) markPaidCmd() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.Invoices.MarkAsPaid(context.Background(), m.id)
		return invoicePaidMsg{invoice: inv, err: err}
	}
}

func (m DetailModel) deleteCmd() tea.Cmd {
	return func() tea.Msg {
		found := m.app.Invoices.Delete(context.Background(), m.id)
		return invoiceDeletedMsg{id: m.id, found: found}
	}
}

// Update implements tea.Model
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoicePaidMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case invoiceDeletedMsg:
		status := fmt.Sprintf("Deleted invoice %s", msg.id)
		if !msg.found {
			status = fmt.Sprintf("Invoice %s was already gone", msg.id)
		}
		return m, func() tea.Msg { return backToListMsg{status: status} }

	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y", "Y":
				m.confirming = false
				return m, m.deleteCmd()
			case "n", "N", "esc":
				m.confirming = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, func() tea.Msg { return backToListMsg{} }

		case key.Matches(msg, DefaultKeyMap.Edit):
			if inv, ok := m.app.Invoices.Get(m.id); ok {
				return m, func() tea.Msg { return openFormMsg{invoice: &inv} }
			}

		case key.Matches(msg, DefaultKeyMap.MarkPaid):
			return m, m.markPaidCmd()

		case key.Matches(msg, DefaultKeyMap.Delete):
			m.confirming = true
		}
	}

	return m, nil
}

// View implements tea.Model
func (m DetailModel) View() string {
	inv, ok := m.app.Invoices.Get(m.id)
	if !ok {
		return errorStyle.Render(fmt.Sprintf("Invoice %s not found", m.id))
	}

	currency := m.app.Config.UI.Currency
	var b strings.Builder

	b.WriteString(titleStyle.Render("#" + inv.ID))
	b.WriteString("  ")
	b.WriteString(statusStyle(inv.Status).Render(strings.ToUpper(string(inv.Status))))
	b.WriteString("\n\n")

	if inv.Description != "" {
		b.WriteString(inv.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(subtitleStyle.Render("Invoice Date   "))
	b.WriteString(formatInvoiceDate(inv.CreatedAt))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Payment Due    "))
	b.WriteString(formatInvoiceDate(inv.PaymentDue))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Payment Terms  "))
	b.WriteString(fmt.Sprintf("%d days", inv.PaymentTerms))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Bill To        "))
	b.WriteString(orPlaceholder(inv.ClientName))
	b.WriteString("\n")
	if !inv.ClientAddress.IsZero() {
		b.WriteString(subtitleStyle.Render("               "))
		b.WriteString(renderAddress(inv.ClientAddress))
		b.WriteString("\n")
	}
	b.WriteString(subtitleStyle.Render("Sent To        "))
	b.WriteString(orPlaceholder(inv.ClientEmail))
	b.WriteString("\n")
	if !inv.SenderAddress.IsZero() {
		b.WriteString(subtitleStyle.Render("From           "))
		b.WriteString(renderAddress(inv.SenderAddress))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(inv.Items) == 0 {
		b.WriteString(subtitleStyle.Render("No line items"))
		b.WriteString("\n")
	} else {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-28s %5s %12s %12s", "ITEM", "QTY", "PRICE", "TOTAL")))
		b.WriteString("\n")
		for _, it := range inv.Items {
			b.WriteString(fmt.Sprintf("  %-28s %5d %12s %12s\n",
				truncateStr(it.Name, 28),
				it.Quantity,
				formatCurrency(it.Price, currency),
				formatCurrency(it.Total, currency),
			))
		}
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Amount Due  "))
	b.WriteString(amountStyle.Render(formatCurrency(inv.Total, currency)))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirming {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Delete invoice %s? (y/n)", inv.ID)))
	} else {
		help := "e edit • d delete • esc back"
		if inv.Status != domain.StatusPaid {
			help = "p mark paid • " + help
		}
		b.WriteString(helpStyle.Render(help))
	}

	return b.String()
}

func renderAddress(a domain.Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.PostCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
