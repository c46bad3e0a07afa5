// Package seed carries the bundled default invoice dataset. It is read
// once, on first run, when no persisted collection exists.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/maya/billfold/internal/domain"
)

//go:embed data.json
var data []byte

// Load decodes the bundled invoice dataset.
func Load() ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return invoices, nil
}
