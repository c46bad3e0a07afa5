// Package store holds the invoice collection in memory and keeps a
// persisted copy in sync. It is the single source of truth for invoices:
// the UI reads derived slices (current page, filtered views) and calls
// the mutation methods; persistence happens in the background.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maya/billfold/internal/domain"
	"github.com/maya/billfold/internal/repository"
)

const (
	defaultPageSize     = 10
	defaultPaymentTerms = 30
	defaultLoadDelay    = 500 * time.Millisecond
)

// SeedFunc supplies the bundled dataset used when no persisted
// collection exists.
type SeedFunc func() ([]domain.Invoice, error)

// Option configures a Store at construction time.
type Option func(*Store)

// WithPageSize sets the fixed pagination window size.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLoadDelay sets the simulated fetch latency for LoadMore. The data
// is local, but the pagination contract stays asynchronous; tests set
// this to zero.
func WithLoadDelay(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithDefaultPaymentTerms sets the payment terms applied to drafts
// created without one.
func WithDefaultPaymentTerms(days int) Option {
	return func(s *Store) {
		if days > 0 {
			s.defaultTerms = days
		}
	}
}

// Store is the invoice state container. All exported methods are safe to
// call from the UI's command goroutines.
type Store struct {
	repo         repository.SnapshotRepository
	seed         SeedFunc
	pageSize     int
	delay        time.Duration
	defaultTerms int

	mu          sync.Mutex
	invoices    []domain.Invoice // authoritative full collection
	page        int
	loaded      bool
	loading     bool
	loadingMore bool
	loadErr     string
	saveErr     error
	saveGen     uint64

	saveMu   sync.Mutex
	savedGen uint64
	saveWG   sync.WaitGroup
}

// New creates a Store over the given persistence adapter and seed
// source. Call Initialize before reading.
func New(repo repository.SnapshotRepository, seed SeedFunc, opts ...Option) *Store {
	s := &Store{
		repo:         repo,
		seed:         seed,
		pageSize:     defaultPageSize,
		delay:        defaultLoadDelay,
		defaultTerms: defaultPaymentTerms,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection, falling back to the bundled
// seed data when nothing is stored or the read fails. It is idempotent:
// once the store is ready, further calls are a no-op. A read failure is
// recorded as a non-fatal message (see LoadError) and the store still
// becomes usable.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.loadErr = ""
	s.mu.Unlock()

	invoices, err := s.repo.Load(ctx)
	loadErr := ""
	if err != nil {
		loadErr = fmt.Sprintf("failed to load invoice data: %v", err)
		invoices = nil
	}

	seeded := false
	if len(invoices) == 0 {
		seedData, seedErr := s.seed()
		if seedErr != nil {
			if loadErr == "" {
				loadErr = fmt.Sprintf("failed to load seed data: %v", seedErr)
			}
			seedData = nil
		} else {
			seeded = true
		}
		invoices = seedData
	}

	s.mu.Lock()
	s.invoices = invoices
	s.page = 1
	s.loaded = true
	s.loading = false
	s.loadErr = loadErr
	s.mu.Unlock()

	// Make the first-run seed durable so the next start reads it back.
	if seeded && err == nil {
		s.scheduleSave()
	}
	return nil
}

// IsLoaded reports whether Initialize has completed.
func (s *Store) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// IsLoading reports whether Initialize is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LoadError returns the non-fatal message recorded when the persisted
// collection could not be read, or "" when initialization was clean.
func (s *Store) LoadError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// SaveError returns the most recent background persistence failure, if
// any. Mutations never surface write failures directly.
func (s *Store) SaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// All returns a copy of the full collection in load order.
func (s *Store) All() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

// Get looks up an invoice by ID in the full collection.
func (s *Store) Get(id string) (domain.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.invoices[idx], true
	}
	return domain.Invoice{}, false
}

// Page slices the given collection into its k-th fixed-size page
// (1-based). It is a pure function of its inputs; no ordering is imposed
// beyond the collection's own.
func Page(list []domain.Invoice, page, size int) []domain.Invoice {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(list) {
		return nil
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// Visible returns the paginated working subset: pages 1 through the
// current page. It is always recomputed from the full collection.
func (s *Store) Visible() []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	end := s.page * s.pageSize
	if end > len(s.invoices) {
		end = len(s.invoices)
	}
	out := make([]domain.Invoice, end)
	copy(out, s.invoices[:end])
	return out
}

// CurrentPage returns the 1-based pagination cursor.
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the fixed page size.
func (s *Store) PageSize() int {
	return s.pageSize
}

// HasMore reports whether pages beyond the current one remain.
func (s *Store) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMoreLocked()
}

func (s *Store) hasMoreLocked() bool {
	return s.page*s.pageSize < len(s.invoices)
}

// IsLoadingMore reports whether a LoadMore is in flight.
func (s *Store) IsLoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}

// LoadMore advances the visible subset by one page after the configured
// delay. A call while another is in flight, or when no pages remain, is
// a silent no-op. The collection is re-read after the delay, so a racing
// delete or create is observed rather than a stale snapshot.
func (s *Store) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.loadingMore || !s.hasMoreLocked() {
		s.mu.Unlock()
		return nil
	}
	s.loadingMore = true
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.mu.Lock()
			s.loadingMore = false
			s.mu.Unlock()
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	if s.hasMoreLocked() {
		s.page++
	}
	s.loadingMore = false
	s.mu.Unlock()
	return nil
}

// ResetPagination returns the visible subset to page 1 of the full
// collection. Filtering never touches this cursor; it is applied on the
// read side.
func (s *Store) ResetPagination() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = 1
}

// Create builds an invoice from the draft and appends it. Strict
// validation runs only when validateRequired is set and the target
// status is pending; draft saves accept incomplete data. A missing ID is
// generated and regenerated on collision until unique.
func (s *Store) Create(ctx context.Context, draft domain.InvoiceDraft, status domain.Status, validateRequired bool) (domain.Invoice, error) {
	if validateRequired && status == domain.StatusPending {
		if err := draft.ValidateRequired(); err != nil {
			return domain.Invoice{}, err
		}
	}

	// paymentDue derives from the provided fields only: a draft missing
	// either keeps an empty due date even after defaults are applied.
	paymentDue := ""
	if draft.CreatedAt != "" && draft.PaymentTerms > 0 {
		paymentDue = domain.CalculatePaymentDue(draft.CreatedAt, draft.PaymentTerms)
	}

	createdAt := draft.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().Format(domain.DateLayout)
	}
	terms := draft.PaymentTerms
	if terms <= 0 {
		terms = s.defaultTerms
	}

	items := domain.NormalizeItems(draft.Items)

	s.mu.Lock()
	id := draft.ID
	if id == "" {
		id = s.uniqueIDLocked()
	}
	inv := domain.Invoice{
		ID:            id,
		CreatedAt:     createdAt,
		PaymentDue:    paymentDue,
		Description:   draft.Description,
		PaymentTerms:  terms,
		ClientName:    draft.ClientName,
		ClientEmail:   draft.ClientEmail,
		Status:        status,
		SenderAddress: draft.SenderAddress,
		ClientAddress: draft.ClientAddress,
		Items:         items,
		Total:         domain.CalculateTotal(items),
	}
	s.invoices = append(s.invoices, inv)
	s.mu.Unlock()

	s.scheduleSave()
	return inv, nil
}

// Update merges the partial update onto the stored record. Touching
// createdAt or paymentTerms recomputes paymentDue from the merged
// values; touching items recomputes item totals and the invoice total.
func (s *Store) Update(ctx context.Context, id string, u domain.InvoiceUpdate) (domain.Invoice, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Invoice{}, domain.ErrNotFound
	}

	merged := s.invoices[idx]
	merged.Apply(u)
	if u.CreatedAt != nil || u.PaymentTerms != nil {
		merged.PaymentDue = domain.CalculatePaymentDue(merged.CreatedAt, merged.PaymentTerms)
	}
	if u.Items != nil {
		merged.Items = domain.NormalizeItems(merged.Items)
		merged.Total = domain.CalculateTotal(merged.Items)
	}

	s.invoices[idx] = merged
	s.mu.Unlock()

	s.scheduleSave()
	return merged, nil
}

// Delete removes the invoice by ID and reports whether one was found.
// Deleting an absent ID is not an error; state is left unchanged.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.invoices = append(s.invoices[:idx], s.invoices[idx+1:]...)
	s.mu.Unlock()

	s.scheduleSave()
	return true
}

// MarkAsPaid sets the invoice status to paid.
func (s *Store) MarkAsPaid(ctx context.Context, id string) (domain.Invoice, error) {
	status := domain.StatusPaid
	return s.Update(ctx, id, domain.InvoiceUpdate{Status: &status})
}

// Flush waits for pending background saves and returns the last write
// failure, if any. Called on shutdown and from tests.
func (s *Store) Flush() error {
	s.saveWG.Wait()
	return s.SaveError()
}

func (s *Store) indexLocked(id string) int {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueIDLocked() string {
	known := make(map[string]bool, len(s.invoices))
	for i := range s.invoices {
		known[s.invoices[i].ID] = true
	}
	id := domain.NewInvoiceID()
	for known[id] {
		id = domain.NewInvoiceID()
	}
	return id
}

// scheduleSave snapshots the collection and persists it in the
// background. Mutations resolve on in-memory state; a failed write is
// recorded on the store instead of propagating to the caller. Stale
// snapshots are skipped by generation so the latest write wins.
func (s *Store) scheduleSave() {
	s.mu.Lock()
	snapshot := make([]domain.Invoice, len(s.invoices))
	copy(snapshot, s.invoices)
	s.saveGen++
	gen := s.saveGen
	s.mu.Unlock()

	s.saveWG.Add(1)
	go func() {
		defer s.saveWG.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if gen <= s.savedGen {
			return
		}
		if err := s.repo.Save(context.Background(), snapshot); err != nil {
			s.mu.Lock()
			s.saveErr = err
			s.mu.Unlock()
			return
		}
		s.savedGen = gen
		s.mu.Lock()
		s.saveErr = nil
		s.mu.Unlock()
	}()
}
