package domain

import (
	"errors"
	"testing"
)

func completeDraft() InvoiceDraft {
	return InvoiceDraft{
		CreatedAt:    "2024-03-01",
		Description:  "Website redesign",
		PaymentTerms: 14,
		ClientName:   "Alex Grim",
		ClientEmail:  "alexgrim@mail.com",
		ClientAddress: Address{
			Street:   "84 Church Way",
			City:     "Bradford",
			PostCode: "BD1 9PB",
			Country:  "United Kingdom",
		},
		Items: []LineItem{{Name: "Banner Design", Quantity: 1, Price: 156}},
	}
}

func TestValidateRequiredComplete(t *testing.T) {
	if err := completeDraft().ValidateRequired(); err != nil {
		t.Fatalf("complete draft should validate, got %v", err)
	}
}

func TestValidateRequiredReportsFirstMissingField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*InvoiceDraft)
		field  string
	}{
		{"empty draft reports clientName first", func(d *InvoiceDraft) { *d = InvoiceDraft{} }, "clientName"},
		{"missing email", func(d *InvoiceDraft) { d.ClientEmail = "" }, "clientEmail"},
		{"missing client address", func(d *InvoiceDraft) { d.ClientAddress = Address{} }, "clientAddress"},
		{"missing description", func(d *InvoiceDraft) { d.Description = "" }, "description"},
		{"missing date", func(d *InvoiceDraft) { d.CreatedAt = "" }, "createdAt"},
		{"missing terms", func(d *InvoiceDraft) { d.PaymentTerms = 0 }, "paymentTerms"},
		{"no items", func(d *InvoiceDraft) { d.Items = nil }, "items"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := completeDraft()
			c.mutate(&d)
			err := d.ValidateRequired()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != c.field {
				t.Errorf("expected field %q, got %q", c.field, verr.Field)
			}
			if !IsValidationError(err) {
				t.Error("IsValidationError should report true")
			}
		})
	}
}

func TestValidationErrorMessages(t *testing.T) {
	if got := (&ValidationError{Field: "clientName"}).Error(); got != "clientName is required for pending invoices" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := (&ValidationError{Field: "items"}).Error(); got != "at least one item is required for pending invoices" {
		t.Errorf("unexpected items message: %q", got)
	}
}

func TestApplyMergesOnlyProvidedFields(t *testing.T) {
	inv := Invoice{
		ID:           "RT3080",
		CreatedAt:    "2021-08-18",
		Description:  "Re-branding",
		PaymentTerms: 1,
		ClientName:   "Jensen Huang",
		Status:       StatusPending,
	}

	name := "Mellon Potter"
	terms := 30
	inv.Apply(InvoiceUpdate{ClientName: &name, PaymentTerms: &terms})

	if inv.ClientName != "Mellon Potter" || inv.PaymentTerms != 30 {
		t.Errorf("updated fields not applied: %+v", inv)
	}
	if inv.Description != "Re-branding" || inv.Status != StatusPending || inv.CreatedAt != "2021-08-18" {
		t.Errorf("untouched fields changed: %+v", inv)
	}
}

func TestApplyReplacesNestedValuesWholesale(t *testing.T) {
	inv := Invoice{ClientAddress: Address{Street: "19 Union Terrace", City: "London"}}

	addr := Address{City: "Bradford"}
	inv.Apply(InvoiceUpdate{ClientAddress: &addr})

	if inv.ClientAddress.Street != "" {
		t.Errorf("nested address should be replaced, not merged: %+v", inv.ClientAddress)
	}
	if inv.ClientAddress.City != "Bradford" {
		t.Errorf("expected replaced city, got %q", inv.ClientAddress.City)
	}

	items := []LineItem{}
	inv.Apply(InvoiceUpdate{Items: &items})
	if inv.Items == nil || len(inv.Items) != 0 {
		t.Errorf("empty items update should clear the list: %+v", inv.Items)
	}
}
