package domain

import "strings"

// FilterAll is the sentinel filter value that bypasses status filtering.
const FilterAll = "All"

// FilterOptions lists the selectable status filters in display order.
func FilterOptions() []string {
	return []string{FilterAll, "Draft", "Pending", "Paid"}
}

// FilterByStatus returns the invoices whose status matches one of the
// selected filters, case-insensitively. The "All" sentinel returns the
// input unchanged. Order is preserved; the input is never mutated.
func FilterByStatus(invoices []Invoice, selected []string) []Invoice {
	for _, f := range selected {
		if strings.EqualFold(f, FilterAll) {
			return invoices
		}
	}

	want := make(map[string]bool, len(selected))
	for _, f := range selected {
		want[strings.ToLower(f)] = true
	}

	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if want[strings.ToLower(string(inv.Status))] {
			out = append(out, inv)
		}
	}
	return out
}
