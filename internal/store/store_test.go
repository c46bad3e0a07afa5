package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/maya/billfold/internal/domain"
)

// mockSnapshotRepo records saves and serves a configurable load result.
type mockSnapshotRepo struct {
	mu       sync.Mutex
	loaded   []domain.Invoice
	loadErr  error
	saveErr  error
	saved    [][]domain.Invoice
	saveCount int
}

func (m *mockSnapshotRepo) Load(ctx context.Context) ([]domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]domain.Invoice, len(m.loaded))
	copy(out, m.loaded)
	return out, nil
}

func (m *mockSnapshotRepo) Save(ctx context.Context, invoices []domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCount++
	if m.saveErr != nil {
		return m.saveErr
	}
	snapshot := make([]domain.Invoice, len(invoices))
	copy(snapshot, invoices)
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *mockSnapshotRepo) lastSaved() []domain.Invoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

func (m *mockSnapshotRepo) saveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCount
}

func makeInvoices(n int) []domain.Invoice {
	out := make([]domain.Invoice, n)
	for i := range out {
		out[i] = domain.Invoice{
			ID:     fmt.Sprintf("AB%04d", i),
			Status: domain.StatusPending,
		}
	}
	return out
}

func seedOf(invoices []domain.Invoice) SeedFunc {
	return func() ([]domain.Invoice, error) { return invoices, nil }
}

func noSeed() ([]domain.Invoice, error) { return nil, errors.New("no seed available") }

func newTestStore(repo *mockSnapshotRepo, seed SeedFunc, opts ...Option) *Store {
	opts = append([]Option{WithLoadDelay(0)}, opts...)
	return New(repo, seed, opts...)
}

func TestInitializeLoadsPersistedCollection(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(3)}
	s := newTestStore(repo, seedOf(makeInvoices(7)))

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("expected the persisted collection, got %d invoices", s.Len())
	}
	if s.LoadError() != "" {
		t.Errorf("unexpected load error: %q", s.LoadError())
	}
	if !s.IsLoaded() {
		t.Error("store should report loaded")
	}
	// persisted data must not be re-saved on startup
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if repo.saveCalls() != 0 {
		t.Errorf("expected no save after loading persisted data, got %d", repo.saveCalls())
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(4)}
	s := newTestStore(repo, noSeed)

	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	s.Delete(ctx, "AB0000")

	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("second Initialize should be a no-op, got %d invoices", s.Len())
	}
}

func TestInitializeSeedsWhenEmptyAndPersistsSeed(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, seedOf(makeInvoices(7)))

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if s.Len() != 7 {
		t.Errorf("expected seed data, got %d invoices", s.Len())
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := repo.lastSaved(); len(got) != 7 {
		t.Errorf("first-run seed should be persisted, saved %d invoices", len(got))
	}
}

func TestInitializeFallsBackToSeedOnReadFailure(t *testing.T) {
	repo := &mockSnapshotRepo{loadErr: errors.New("disk on fire")}
	s := newTestStore(repo, seedOf(makeInvoices(7)))

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("a failed read must not fail initialization: %v", err)
	}
	if s.Len() != 7 {
		t.Errorf("expected seed fallback, got %d invoices", s.Len())
	}
	if s.LoadError() == "" {
		t.Error("a failed read should be recorded as a load error")
	}
	// do not overwrite a store we could not read
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if repo.saveCalls() != 0 {
		t.Errorf("seed must not be persisted over an unreadable store, got %d saves", repo.saveCalls())
	}
}

func TestInitializeSeedFailure(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, noSeed)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty collection, got %d", s.Len())
	}
	if s.LoadError() == "" {
		t.Error("seed failure should be recorded as a load error")
	}
}

func TestPagination(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(12)}
	s := newTestStore(repo, noSeed, WithPageSize(10))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if got := len(s.Visible()); got != 10 {
		t.Errorf("expected first page of 10, got %d", got)
	}
	if !s.HasMore() {
		t.Error("expected more pages")
	}

	if err := s.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := len(s.Visible()); got != 12 {
		t.Errorf("expected all 12 after load more, got %d", got)
	}
	if s.HasMore() {
		t.Error("no pages should remain")
	}

	// no-op past the end
	if err := s.LoadMore(ctx); err != nil {
		t.Fatalf("LoadMore past end: %v", err)
	}
	if s.CurrentPage() != 2 {
		t.Errorf("page should not advance past the data, got %d", s.CurrentPage())
	}

	s.ResetPagination()
	if got := len(s.Visible()); got != 10 {
		t.Errorf("expected 10 after reset, got %d", got)
	}
}

func TestLoadMoreHonorsContextCancellation(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(15)}
	s := New(repo, noSeed, WithLoadDelay(time.Minute), WithPageSize(10))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.LoadMore(cancelled); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.CurrentPage() != 1 {
		t.Errorf("cancelled load must not advance the page, got %d", s.CurrentPage())
	}
	if s.IsLoadingMore() {
		t.Error("loading flag should be cleared after cancellation")
	}
}

func TestPageIsPure(t *testing.T) {
	list := makeInvoices(5)
	cases := []struct {
		page, size, want int
	}{
		{1, 2, 2},
		{3, 2, 1},
		{4, 2, 0},
		{0, 2, 0},
		{1, 0, 0},
		{1, 10, 5},
	}
	for _, c := range cases {
		if got := len(Page(list, c.page, c.size)); got != c.want {
			t.Errorf("Page(%d, %d) returned %d invoices, want %d", c.page, c.size, got, c.want)
		}
	}
	if got := Page(list, 2, 2); got[0].ID != "AB0002" {
		t.Errorf("unexpected page start: %s", got[0].ID)
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, noSeed, WithDefaultPaymentTerms(14))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	inv, err := s.Create(ctx, domain.InvoiceDraft{ClientName: "Anita Wainwright"}, domain.StatusDraft, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !domain.ValidInvoiceID(inv.ID) {
		t.Errorf("expected a generated ID, got %q", inv.ID)
	}
	if inv.CreatedAt != time.Now().Format(domain.DateLayout) {
		t.Errorf("expected today's date, got %q", inv.CreatedAt)
	}
	if inv.PaymentTerms != 14 {
		t.Errorf("expected default terms 14, got %d", inv.PaymentTerms)
	}
	// paymentDue derives from the provided fields only, not the defaults
	if inv.PaymentDue != "" {
		t.Errorf("paymentDue should stay empty when the draft has no date, got %q", inv.PaymentDue)
	}
	if inv.Items == nil || len(inv.Items) != 0 {
		t.Errorf("items should default to an empty list, got %v", inv.Items)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 invoice, got %d", s.Len())
	}
}

func TestCreateComputesDerivedFields(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	draft := domain.InvoiceDraft{
		CreatedAt:    "2024-02-14",
		PaymentTerms: 30,
		ClientName:   "Alex Grim",
		Items: []domain.LineItem{
			{Name: "Banner Design", Quantity: 2, Price: 3},
			{Name: "Email Design", Quantity: 1, Price: 4},
		},
	}
	inv, err := s.Create(ctx, draft, domain.StatusDraft, false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.PaymentDue != "2024-03-15" {
		t.Errorf("expected paymentDue 2024-03-15, got %q", inv.PaymentDue)
	}
	if inv.Total != 10 {
		t.Errorf("expected total 10, got %v", inv.Total)
	}
	if inv.Items[0].Total != 6 || inv.Items[1].Total != 4 {
		t.Errorf("item totals not normalized: %+v", inv.Items)
	}
}

func TestCreatePendingRequiresCompleteDraft(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	_, err := s.Create(ctx, domain.InvoiceDraft{}, domain.StatusPending, true)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "clientName" {
		t.Fatalf("expected clientName validation error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("failed create must not modify the collection, got %d", s.Len())
	}

	// the same incomplete draft is accepted without strict validation
	if _, err := s.Create(ctx, domain.InvoiceDraft{}, domain.StatusDraft, false); err != nil {
		t.Fatalf("draft save should accept incomplete data: %v", err)
	}
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	repo := &mockSnapshotRepo{}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		inv, err := s.Create(ctx, domain.InvoiceDraft{}, domain.StatusDraft, false)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[inv.ID] {
			t.Fatalf("duplicate ID generated: %s", inv.ID)
		}
		seen[inv.ID] = true
	}
}

func TestUpdateRecomputesDerivedFields(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: []domain.Invoice{{
		ID:           "RT3080",
		CreatedAt:    "2024-01-01",
		PaymentDue:   "2024-01-31",
		PaymentTerms: 30,
		Status:       domain.StatusPending,
		Items:        []domain.LineItem{{Name: "Logo", Quantity: 1, Price: 100, Total: 100}},
		Total:        100,
	}}}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	terms := 7
	inv, err := s.Update(ctx, "RT3080", domain.InvoiceUpdate{PaymentTerms: &terms})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if inv.PaymentDue != "2024-01-08" {
		t.Errorf("expected recomputed due date 2024-01-08, got %q", inv.PaymentDue)
	}

	items := []domain.LineItem{{Name: "Logo", Quantity: 3, Price: 50}}
	inv, err = s.Update(ctx, "RT3080", domain.InvoiceUpdate{Items: &items})
	if err != nil {
		t.Fatalf("Update items: %v", err)
	}
	if inv.Total != 150 || inv.Items[0].Total != 150 {
		t.Errorf("expected recomputed totals, got total=%v items=%+v", inv.Total, inv.Items)
	}

	// untouched fields keep their derived values
	name := "New Client"
	inv, err = s.Update(ctx, "RT3080", domain.InvoiceUpdate{ClientName: &name})
	if err != nil {
		t.Fatalf("Update name: %v", err)
	}
	if inv.PaymentDue != "2024-01-08" || inv.Total != 150 {
		t.Errorf("derived fields should be stable, got due=%q total=%v", inv.PaymentDue, inv.Total)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(2)}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	name := "x"
	if _, err := s.Update(ctx, "ZZ9999", domain.InvoiceUpdate{ClientName: &name}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteReportsPresence(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(3)}
	s := newTestStore(repo, noSeed, WithPageSize(2))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if !s.Delete(ctx, "AB0001") {
		t.Error("expected delete of existing invoice to report true")
	}
	if s.Delete(ctx, "AB0001") {
		t.Error("expected delete of absent invoice to report false")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 invoices, got %d", s.Len())
	}
	// the visible window is recomputed, not patched
	vis := s.Visible()
	if len(vis) != 2 || vis[0].ID != "AB0000" || vis[1].ID != "AB0002" {
		t.Errorf("unexpected visible subset after delete: %+v", vis)
	}
}

func TestMarkAsPaid(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: []domain.Invoice{{ID: "XM9141", Status: domain.StatusPending}}}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	inv, err := s.MarkAsPaid(ctx, "XM9141")
	if err != nil {
		t.Fatalf("MarkAsPaid: %v", err)
	}
	if inv.Status != domain.StatusPaid {
		t.Errorf("expected paid status, got %q", inv.Status)
	}
	if got, _ := s.Get("XM9141"); got.Status != domain.StatusPaid {
		t.Errorf("stored invoice not updated: %q", got.Status)
	}

	if _, err := s.MarkAsPaid(ctx, "ZZ0000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMutationsPersistInBackground(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(2)}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if _, err := s.Create(ctx, domain.InvoiceDraft{ClientName: "A"}, domain.StatusDraft, false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s.Delete(ctx, "AB0000")

	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	saved := repo.lastSaved()
	all := s.All()
	if len(saved) != len(all) {
		t.Fatalf("latest snapshot should match the collection: saved %d, have %d", len(saved), len(all))
	}
	for i := range all {
		if saved[i].ID != all[i].ID {
			t.Errorf("snapshot mismatch at %d: %s vs %s", i, saved[i].ID, all[i].ID)
		}
	}
}

func TestWriteFailureIsRecordedNotReturned(t *testing.T) {
	repo := &mockSnapshotRepo{loaded: makeInvoices(1), saveErr: errors.New("disk full")}
	s := newTestStore(repo, noSeed)
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	// mutation succeeds even though the write behind it fails
	inv, err := s.Create(ctx, domain.InvoiceDraft{ClientName: "B"}, domain.StatusDraft, false)
	if err != nil {
		t.Fatalf("Create should not surface write failures: %v", err)
	}
	if _, ok := s.Get(inv.ID); !ok {
		t.Error("invoice should be in memory despite the failed write")
	}

	if err := s.Flush(); err == nil {
		t.Fatal("Flush should report the recorded write failure")
	}
	if s.SaveError() == nil {
		t.Error("SaveError should be set after a failed write")
	}

	// a later successful write clears the recorded failure
	repo.mu.Lock()
	repo.saveErr = nil
	repo.mu.Unlock()
	s.Delete(ctx, inv.ID)
	if err := s.Flush(); err != nil {
		t.Fatalf("expected recovered persistence, got %v", err)
	}
}
