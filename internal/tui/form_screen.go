package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maya/billfold/internal/app"
	"github.com/maya/billfold/internal/domain"
)

// Fixed field indexes. Item inputs follow, three per line item.
const (
	fieldClientName = iota
	fieldClientEmail
	fieldStreet
	fieldCity
	fieldPostCode
	fieldCountry
	fieldDescription
	fieldCreatedAt
	fieldPaymentTerms
	fixedFieldCount
)

const inputsPerItem = 3 // name, quantity, price

// FormModel is the create/edit invoice form.
type FormModel struct {
	app *app.App

	editing  *domain.Invoice // nil when creating
	fields   []textinput.Model
	items    []textinput.Model // flat: name, qty, price per item
	focusIdx int
	errMsg   string
}

// NewFormModel creates the form screen. A nil invoice opens an empty
// create form with the sender address prefilled from config.
func NewFormModel(a *app.App, inv *domain.Invoice) FormModel {
	m := FormModel{app: a, editing: inv}

	labels := []struct {
		placeholder string
		limit       int
	}{
		{"client name", 60},
		{"client email", 60},
		{"street address", 60},
		{"city", 40},
		{"post code", 12},
		{"country", 40},
		{"what is this invoice for", 80},
		{"YYYY-MM-DD", 10},
		{"days", 4},
	}
	m.fields = make([]textinput.Model, fixedFieldCount)
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.CharLimit = l.limit
		m.fields[i] = ti
	}

	if inv != nil {
		m.fields[fieldClientName].SetValue(inv.ClientName)
		m.fields[fieldClientEmail].SetValue(inv.ClientEmail)
		m.fields[fieldStreet].SetValue(inv.ClientAddress.Street)
		m.fields[fieldCity].SetValue(inv.ClientAddress.City)
		m.fields[fieldPostCode].SetValue(inv.ClientAddress.PostCode)
		m.fields[fieldCountry].SetValue(inv.ClientAddress.Country)
		m.fields[fieldDescription].SetValue(inv.Description)
		m.fields[fieldCreatedAt].SetValue(inv.CreatedAt)
		if inv.PaymentTerms > 0 {
			m.fields[fieldPaymentTerms].SetValue(strconv.Itoa(inv.PaymentTerms))
		}
		for _, it := range inv.Items {
			m.appendItemInputs(it.Name, it.Quantity, it.Price)
		}
	}

	m.fields[0].Focus()
	return m
}

func (m *FormModel) appendItemInputs(name string, qty int, price float64) {
	nameIn := textinput.New()
	nameIn.Placeholder = "item name"
	nameIn.CharLimit = 40
	if name != "" {
		nameIn.SetValue(name)
	}

	qtyIn := textinput.New()
	qtyIn.Placeholder = "qty"
	qtyIn.CharLimit = 5
	if qty != 0 {
		qtyIn.SetValue(strconv.Itoa(qty))
	}

	priceIn := textinput.New()
	priceIn.Placeholder = "price"
	priceIn.CharLimit = 12
	if price != 0 {
		priceIn.SetValue(strconv.FormatFloat(price, 'f', -1, 64))
	}

	m.items = append(m.items, nameIn, qtyIn, priceIn)
}

// Init implements tea.Model
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// IsCapturingInput is always true: the form owns the keyboard
func (m FormModel) IsCapturingInput() bool {
	return true
}

func (m FormModel) inputCount() int {
	return len(m.fields) + len(m.items)
}

func (m *FormModel) inputAt(i int) *textinput.Model {
	if i < len(m.fields) {
		return &m.fields[i]
	}
	return &m.items[i-len(m.fields)]
}

func (m *FormModel) setFocus(i int) {
	n := m.inputCount()
	if n == 0 {
		return
	}
	if i < 0 {
		i = n - 1
	}
	i %= n
	for j := 0; j < n; j++ {
		if j == i {
			m.inputAt(j).Focus()
		} else {
			m.inputAt(j).Blur()
		}
	}
	m.focusIdx = i
}

// draftFromInputs builds the draft currently described by the form.
// Numeric fields that fail to parse are reported as an error string.
func (m FormModel) draftFromInputs() (domain.InvoiceDraft, string) {
	d := domain.InvoiceDraft{
		ClientName:  strings.TrimSpace(m.fields[fieldClientName].Value()),
		ClientEmail: strings.TrimSpace(m.fields[fieldClientEmail].Value()),
		Description: strings.TrimSpace(m.fields[fieldDescription].Value()),
		CreatedAt:   strings.TrimSpace(m.fields[fieldCreatedAt].Value()),
		ClientAddress: domain.Address{
			Street:   strings.TrimSpace(m.fields[fieldStreet].Value()),
			City:     strings.TrimSpace(m.fields[fieldCity].Value()),
			PostCode: strings.TrimSpace(m.fields[fieldPostCode].Value()),
			Country:  strings.TrimSpace(m.fields[fieldCountry].Value()),
		},
	}

	if m.editing != nil {
		d.SenderAddress = m.editing.SenderAddress
	} else {
		d.SenderAddress = domain.Address{
			Street:   m.app.Config.Sender.Street,
			City:     m.app.Config.Sender.City,
			PostCode: m.app.Config.Sender.PostCode,
			Country:  m.app.Config.Sender.Country,
		}
	}

	if v := strings.TrimSpace(m.fields[fieldPaymentTerms].Value()); v != "" {
		terms, err := strconv.Atoi(v)
		if err != nil || terms <= 0 {
			return d, "payment terms must be a positive number of days"
		}
		d.PaymentTerms = terms
	}

	if d.CreatedAt != "" {
		if !domain.ValidDate(d.CreatedAt) {
			return d, "invoice date must be YYYY-MM-DD"
		}
	}

	for i := 0; i < len(m.items); i += inputsPerItem {
		name := strings.TrimSpace(m.items[i].Value())
		qtyRaw := strings.TrimSpace(m.items[i+1].Value())
		priceRaw := strings.TrimSpace(m.items[i+2].Value())
		if name == "" && qtyRaw == "" && priceRaw == "" {
			continue // empty row, skip
		}

		item := domain.LineItem{Name: name}
		if qtyRaw != "" {
			qty, err := strconv.Atoi(qtyRaw)
			if err != nil || qty < 0 {
				return d, fmt.Sprintf("item %d: quantity must be a whole number", i/inputsPerItem+1)
			}
			item.Quantity = qty
		}
		if priceRaw != "" {
			price, err := strconv.ParseFloat(priceRaw, 64)
			if err != nil || price < 0 {
				return d, fmt.Sprintf("item %d: price must be a number", i/inputsPerItem+1)
			}
			item.Price = price
		}
		d.Items = append(d.Items, item)
	}

	return d, ""
}

func (m FormModel) saveCmd(draft domain.InvoiceDraft, send bool) tea.Cmd {
	editing := m.editing
	a := m.app
	return func() tea.Msg {
		if editing == nil {
			status := domain.StatusDraft
			if send {
				status = domain.StatusPending
			}
			inv, err := a.Invoices.Create(context.Background(), draft, status, send)
			return invoiceSavedMsg{invoice: inv, created: true, err: err}
		}

		u := domain.InvoiceUpdate{
			CreatedAt:     &draft.CreatedAt,
			Description:   &draft.Description,
			PaymentTerms:  &draft.PaymentTerms,
			ClientName:    &draft.ClientName,
			ClientEmail:   &draft.ClientEmail,
			ClientAddress: &draft.ClientAddress,
			Items:         &draft.Items,
		}
		inv, err := a.Invoices.Update(context.Background(), editing.ID, u)
		return invoiceSavedMsg{invoice: inv, created: false, err: err}
	}
}

// Update implements tea.Model
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		verb := "Updated"
		if msg.created {
			verb = "Created"
		}
		status := fmt.Sprintf("%s invoice %s", verb, msg.invoice.ID)
		return m, func() tea.Msg { return backToListMsg{status: status} }

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToListMsg{} }

		case "tab", "down":
			m.setFocus(m.focusIdx + 1)
			return m, nil

		case "shift+tab", "up":
			m.setFocus(m.focusIdx - 1)
			return m, nil

		case "ctrl+a":
			m.appendItemInputs("", 0, 0)
			m.setFocus(len(m.fields) + len(m.items) - inputsPerItem)
			return m, nil

		case "ctrl+x":
			if m.focusIdx >= len(m.fields) && len(m.items) > 0 {
				row := (m.focusIdx - len(m.fields)) / inputsPerItem
				start := row * inputsPerItem
				m.items = append(m.items[:start], m.items[start+inputsPerItem:]...)
				m.setFocus(min(m.focusIdx, m.inputCount()-1))
			}
			return m, nil

		case "ctrl+s": // save and send
			draft, parseErr := m.draftFromInputs()
			if parseErr != "" {
				m.errMsg = parseErr
				return m, nil
			}
			if m.editing != nil && m.editing.Status == domain.StatusPending {
				if err := draft.ValidateRequired(); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			return m, m.saveCmd(draft, true)

		case "ctrl+d": // save as draft / save changes without validation
			draft, parseErr := m.draftFromInputs()
			if parseErr != "" {
				m.errMsg = parseErr
				return m, nil
			}
			return m, m.saveCmd(draft, false)
		}

		m.errMsg = ""
		var cmd tea.Cmd
		in := m.inputAt(m.focusIdx)
		*in, cmd = in.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m FormModel) View() string {
	var b strings.Builder

	if m.editing != nil {
		b.WriteString(titleStyle.Render("Edit #" + m.editing.ID))
	} else {
		b.WriteString(titleStyle.Render("New Invoice"))
	}
	b.WriteString("\n\n")

	labels := []string{
		"Client Name", "Client Email",
		"Street", "City", "Post Code", "Country",
		"Description", "Invoice Date", "Payment Terms",
	}
	for i, label := range labels {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(m.fields[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Items"))
	b.WriteString("\n")
	if len(m.items) == 0 {
		b.WriteString(helpStyle.Render("  none — ctrl+a adds one"))
		b.WriteString("\n")
	}
	for i := 0; i < len(m.items); i += inputsPerItem {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			m.items[i].View(), m.items[i+1].View(), m.items[i+2].View()))
	}

	if draft, parseErr := m.draftFromInputs(); parseErr == "" {
		total := domain.CalculateTotal(domain.NormalizeItems(draft.Items))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Total  "))
		b.WriteString(amountStyle.Render(formatCurrency(total, m.app.Config.UI.Currency)))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing != nil {
		b.WriteString(helpStyle.Render("tab next • ctrl+a/ctrl+x item • ctrl+s save • ctrl+d save without checks • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("tab next • ctrl+a/ctrl+x item • ctrl+s save & send • ctrl+d save draft • esc cancel"))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
