package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maya/billfold/internal/db"
	"github.com/maya/billfold/internal/domain"
)

// StorageKey is the fixed namespace the invoice collection is stored under.
const StorageKey = "invoice-storage"

// snapshot is the on-disk JSON shape.
type snapshot struct {
	Invoices []domain.Invoice `json:"invoices"`
}

// SnapshotRepo stores the invoice collection as a JSON blob in the
// encrypted SQLite key-value table.
type SnapshotRepo struct {
	db *db.DB
}

// NewSnapshotRepo creates a new SnapshotRepo
func NewSnapshotRepo(database *db.DB) *SnapshotRepo {
	return &SnapshotRepo{db: database}
}

// Load reads the stored collection. A missing key is not an error: it
// means first run, and the caller falls back to seed data.
func (r *SnapshotRepo) Load(ctx context.Context) ([]domain.Invoice, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM storage WHERE key = ?", StorageKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode invoice snapshot: %w", err)
	}

	return snap.Invoices, nil
}

// Save overwrites the stored collection. The upsert keeps writes
// last-write-wins per key.
func (r *SnapshotRepo) Save(ctx context.Context, invoices []domain.Invoice) error {
	data, err := json.Marshal(snapshot{Invoices: invoices})
	if err != nil {
		return fmt.Errorf("failed to encode invoice snapshot: %w", err)
	}

	query := `
		INSERT INTO storage (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, StorageKey, string(data), formatTime()); err != nil {
		return fmt.Errorf("failed to write invoice snapshot: %w", err)
	}

	return nil
}

// Clear removes the stored collection; the next load seeds from the
// bundled data again.
func (r *SnapshotRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM storage WHERE key = ?", StorageKey); err != nil {
		return fmt.Errorf("failed to clear invoice snapshot: %w", err)
	}
	return nil
}
