package tui

import (
	"fmt"
	"time"

	"github.com/maya/billfold/internal/domain"
)

// formatCurrency formats an amount as "£1,800.90" with comma separators
// and the configured currency symbol.
func formatCurrency(amount float64, symbol string) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := symbol
	if negative {
		prefix = "-" + symbol
	}
	return prefix + string(result) + decPart
}

// formatInvoiceDate renders a YYYY-MM-DD date as "18 Aug 2021".
// Empty or unparseable dates render as a dash.
func formatInvoiceDate(s string) string {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return "—"
	}
	return t.Format("02 Jan 2006")
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
