package seed

import (
	"math"
	"testing"

	"github.com/maya/billfold/internal/domain"
)

func TestLoad(t *testing.T) {
	invoices, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(invoices) == 0 {
		t.Fatal("bundled dataset is empty")
	}

	seen := make(map[string]bool)
	for _, inv := range invoices {
		if !domain.ValidInvoiceID(inv.ID) {
			t.Errorf("invoice %q has a malformed ID", inv.ID)
		}
		if seen[inv.ID] {
			t.Errorf("duplicate invoice ID %q", inv.ID)
		}
		seen[inv.ID] = true

		switch inv.Status {
		case domain.StatusDraft, domain.StatusPending, domain.StatusPaid:
		default:
			t.Errorf("invoice %s has unknown status %q", inv.ID, inv.Status)
		}

		// derived fields must be internally consistent
		if inv.CreatedAt != "" && inv.PaymentTerms > 0 {
			if want := domain.CalculatePaymentDue(inv.CreatedAt, inv.PaymentTerms); inv.PaymentDue != want {
				t.Errorf("invoice %s paymentDue = %q, want %q", inv.ID, inv.PaymentDue, want)
			}
		}
		if want := domain.CalculateTotal(inv.Items); math.Abs(inv.Total-want) > 1e-9 {
			t.Errorf("invoice %s total = %v, want %v", inv.ID, inv.Total, want)
		}
		for _, item := range inv.Items {
			if want := float64(item.Quantity) * item.Price; math.Abs(item.Total-want) > 1e-9 {
				t.Errorf("invoice %s item %q total = %v, want %v", inv.ID, item.Name, item.Total, want)
			}
		}
	}
}
