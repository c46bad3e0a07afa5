package tui

import "github.com/maya/billfold/internal/domain"

// storeReadyMsg reports that the invoice store finished initializing.
// warn carries the non-fatal degraded-load message, if any.
type storeReadyMsg struct {
	warn string
}

// loadMoreDoneMsg reports a completed load-more fetch.
type loadMoreDoneMsg struct {
	err error
}

// openDetailMsg asks the root model to show a single invoice.
type openDetailMsg struct {
	id string
}

// openFormMsg asks the root model to open the invoice form.
// A nil invoice means "create new".
type openFormMsg struct {
	invoice *domain.Invoice
}

// backToListMsg returns to the invoice list, optionally with a status line.
type backToListMsg struct {
	status string
}

// invoiceSavedMsg reports the result of a create or update.
type invoiceSavedMsg struct {
	invoice domain.Invoice
	created bool
	err     error
}

// invoicePaidMsg reports the result of marking an invoice paid.
type invoicePaidMsg struct {
	invoice domain.Invoice
	err     error
}

// invoiceDeletedMsg reports the result of a delete.
type invoiceDeletedMsg struct {
	id    string
	found bool
}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}
