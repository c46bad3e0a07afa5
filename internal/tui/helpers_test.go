package tui

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{1800.9, "£1,800.90"},
		{556, "£556.00"},
		{14002.33, "£14,002.33"},
		{0, "£0.00"},
		{1234567.5, "£1,234,567.50"},
		{-102.04, "-£102.04"},
	}
	for _, c := range cases {
		if got := formatCurrency(c.amount, "£"); got != c.want {
			t.Errorf("formatCurrency(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
	if got := formatCurrency(10, "$"); got != "$10.00" {
		t.Errorf("expected configured symbol, got %q", got)
	}
}

func TestFormatInvoiceDate(t *testing.T) {
	if got := formatInvoiceDate("2021-08-18"); got != "18 Aug 2021" {
		t.Errorf("formatInvoiceDate = %q", got)
	}
	if got := formatInvoiceDate(""); got != "—" {
		t.Errorf("empty date should render as a dash, got %q", got)
	}
	if got := formatInvoiceDate("bogus"); got != "—" {
		t.Errorf("bad date should render as a dash, got %q", got)
	}
}
