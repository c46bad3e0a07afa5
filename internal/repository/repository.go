package repository

import (
	"context"

	"github.com/maya/billfold/internal/domain"
)

// SnapshotRepository persists the full invoice collection as a single
// blob under a fixed key. Only the collection itself is stored; transient
// state (loading flags, pagination cursor, errors) never reaches disk.
type SnapshotRepository interface {
	// Load returns the persisted collection, or an empty one when nothing
	// has been stored yet.
	Load(ctx context.Context) ([]domain.Invoice, error)

	// Save overwrites the stored collection with the given snapshot.
	Save(ctx context.Context, invoices []domain.Invoice) error
}
