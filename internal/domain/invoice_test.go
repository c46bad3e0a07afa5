package domain

import "testing"

func TestNewInvoiceIDFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := NewInvoiceID()
		if !ValidInvoiceID(id) {
			t.Fatalf("generated ID %q does not match the two-letter four-digit shape", id)
		}
	}
}

func TestNewInvoiceIDVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewInvoiceID()] = true
	}
	// 100 draws from a 6.76M space should essentially never all collide
	if len(seen) < 2 {
		t.Errorf("expected varied IDs, got %d distinct out of 100", len(seen))
	}
}

func TestValidInvoiceID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"RT3080", true},
		{"XM9141", true},
		{"rt3080", false},
		{"RT308", false},
		{"RT30800", false},
		{"R13080", false},
		{"RTX080", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidInvoiceID(c.id); got != c.valid {
			t.Errorf("ValidInvoiceID(%q) = %v, want %v", c.id, got, c.valid)
		}
	}
}

func TestCalculatePaymentDue(t *testing.T) {
	cases := []struct {
		createdAt string
		terms     int
		want      string
	}{
		{"2024-01-01", 30, "2024-01-31"},
		{"2021-08-18", 7, "2021-08-25"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2024-12-31", 1, "2025-01-01"},
		{"", 30, ""},
		{"not-a-date", 30, ""},
	}
	for _, c := range cases {
		if got := CalculatePaymentDue(c.createdAt, c.terms); got != c.want {
			t.Errorf("CalculatePaymentDue(%q, %d) = %q, want %q", c.createdAt, c.terms, got, c.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2024-03-15") {
		t.Error("expected 2024-03-15 to be valid")
	}
	for _, s := range []string{"", "15-03-2024", "2024-3-15", "2024-03-15T00:00:00Z"} {
		if ValidDate(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestNormalizeItems(t *testing.T) {
	in := []LineItem{
		{Name: "Design", Quantity: 2, Price: 100.50, Total: 999}, // stale total
		{Name: "Hosting", Quantity: 0, Price: 50},
	}
	out := NormalizeItems(in)

	if out[0].Total != 201 {
		t.Errorf("expected total 201, got %v", out[0].Total)
	}
	if out[1].Total != 0 {
		t.Errorf("expected zero total for zero quantity, got %v", out[1].Total)
	}
	// input must not be mutated
	if in[0].Total != 999 {
		t.Errorf("NormalizeItems mutated its input: %v", in[0].Total)
	}
}

func TestCalculateTotal(t *testing.T) {
	items := []LineItem{
		{Quantity: 1, Price: 156},
		{Quantity: 2, Price: 200},
	}
	if got := CalculateTotal(items); got != 556 {
		t.Errorf("expected 556, got %v", got)
	}
	if got := CalculateTotal(nil); got != 0 {
		t.Errorf("expected 0 for no items, got %v", got)
	}
}

func TestAddressIsZero(t *testing.T) {
	if !(Address{}).IsZero() {
		t.Error("empty address should be zero")
	}
	if (Address{City: "London"}).IsZero() {
		t.Error("address with a city should not be zero")
	}
}
