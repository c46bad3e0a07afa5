package domain

// InvoiceDraft is the partial input for creating an invoice. Zero values
// mean "not provided": drafts may be saved with almost nothing filled in,
// and the store fills in defaults.
type InvoiceDraft struct {
	ID            string
	CreatedAt     string
	Description   string
	PaymentTerms  int
	ClientName    string
	ClientEmail   string
	SenderAddress Address
	ClientAddress Address
	Items         []LineItem
}

// requiredFields is checked in order; validation reports the first
// missing one.
var requiredFields = []struct {
	name    string
	missing func(d InvoiceDraft) bool
}{
	{"clientName", func(d InvoiceDraft) bool { return d.ClientName == "" }},
	{"clientEmail", func(d InvoiceDraft) bool { return d.ClientEmail == "" }},
	{"clientAddress", func(d InvoiceDraft) bool { return d.ClientAddress.IsZero() }},
	{"description", func(d InvoiceDraft) bool { return d.Description == "" }},
	{"createdAt", func(d InvoiceDraft) bool { return d.CreatedAt == "" }},
	{"paymentTerms", func(d InvoiceDraft) bool { return d.PaymentTerms <= 0 }},
}

// ValidateRequired enforces the strict field set for invoices submitted
// for sending. Draft saves skip this entirely.
func (d InvoiceDraft) ValidateRequired() error {
	for _, f := range requiredFields {
		if f.missing(d) {
			return &ValidationError{Field: f.name}
		}
	}
	if len(d.Items) == 0 {
		return &ValidationError{Field: "items"}
	}
	return nil
}

// InvoiceUpdate is a partial update. Nil fields are left untouched;
// non-nil addresses and items replace the existing value wholesale.
type InvoiceUpdate struct {
	CreatedAt     *string
	Description   *string
	PaymentTerms  *int
	ClientName    *string
	ClientEmail   *string
	Status        *Status
	SenderAddress *Address
	ClientAddress *Address
	Items         *[]LineItem
}

// Apply merges the non-nil fields of u onto inv. Derived fields
// (paymentDue, totals) are the caller's responsibility.
func (inv *Invoice) Apply(u InvoiceUpdate) {
	if u.CreatedAt != nil {
		inv.CreatedAt = *u.CreatedAt
	}
	if u.Description != nil {
		inv.Description = *u.Description
	}
	if u.PaymentTerms != nil {
		inv.PaymentTerms = *u.PaymentTerms
	}
	if u.ClientName != nil {
		inv.ClientName = *u.ClientName
	}
	if u.ClientEmail != nil {
		inv.ClientEmail = *u.ClientEmail
	}
	if u.Status != nil {
		inv.Status = *u.Status
	}
	if u.SenderAddress != nil {
		inv.SenderAddress = *u.SenderAddress
	}
	if u.ClientAddress != nil {
		inv.ClientAddress = *u.ClientAddress
	}
	if u.Items != nil {
		inv.Items = *u.Items
	}
}
