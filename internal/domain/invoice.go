package domain

import (
	"math/rand/v2"
	"regexp"
	"time"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Address is a postal address block. Nested addresses are replaced
// wholesale on update, never merged field by field.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

// IsZero reports whether no field of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// LineItem is a billed item. Total is always Quantity * Price and is
// recomputed on every mutation rather than edited directly.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// Invoice is the persisted billing record. JSON tags match the stored
// snapshot shape. Dates are calendar dates in YYYY-MM-DD form; an empty
// string is a valid degraded state for drafts.
type Invoice struct {
	ID            string     `json:"id"`
	CreatedAt     string     `json:"createdAt"`
	PaymentDue    string     `json:"paymentDue"`
	Description   string     `json:"description"`
	PaymentTerms  int        `json:"paymentTerms"`
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	Status        Status     `json:"status"`
	SenderAddress Address    `json:"senderAddress"`
	ClientAddress Address    `json:"clientAddress"`
	Items         []LineItem `json:"items"`
	Total         float64    `json:"total"`
}

// DateLayout is the calendar date format used throughout the data model.
const DateLayout = "2006-01-02"

const (
	idLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	idDigits  = "0123456789"
)

var idPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)

// NewInvoiceID generates a random invoice ID: two uppercase letters
// followed by four digits, e.g. "RT3080". Uniqueness against an existing
// collection is the caller's responsibility.
func NewInvoiceID() string {
	id := make([]byte, 6)
	for i := 0; i < 2; i++ {
		id[i] = idLetters[rand.IntN(len(idLetters))]
	}
	for i := 2; i < 6; i++ {
		id[i] = idDigits[rand.IntN(len(idDigits))]
	}
	return string(id)
}

// ValidInvoiceID reports whether s has the 2-letter, 4-digit ID shape.
func ValidInvoiceID(s string) bool {
	return idPattern.MatchString(s)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// CalculatePaymentDue returns createdAt advanced by paymentTerms days.
// It returns "" when createdAt is empty or unparseable, which is the
// accepted degraded state for incomplete drafts.
func CalculatePaymentDue(createdAt string, paymentTerms int) string {
	created, err := time.Parse(DateLayout, createdAt)
	if err != nil {
		return ""
	}
	return created.AddDate(0, 0, paymentTerms).Format(DateLayout)
}

// NormalizeItems returns a copy of items with each Total set to
// Quantity * Price.
func NormalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		item.Total = float64(item.Quantity) * item.Price
		out[i] = item
	}
	return out
}

// CalculateTotal sums quantity * price over all items.
func CalculateTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
