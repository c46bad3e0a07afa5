package domain

import "testing"

func filterFixture() []Invoice {
	return []Invoice{
		{ID: "RT3080", Status: StatusPaid},
		{ID: "XM9141", Status: StatusPending},
		{ID: "FV2353", Status: StatusDraft},
		{ID: "AA1449", Status: StatusPending},
	}
}

func TestFilterByStatusAllBypasses(t *testing.T) {
	invoices := filterFixture()
	got := FilterByStatus(invoices, []string{FilterAll})
	if len(got) != len(invoices) {
		t.Fatalf("All filter should return everything, got %d", len(got))
	}
	// "All" wins even when combined with narrower filters
	got = FilterByStatus(invoices, []string{"Paid", "all"})
	if len(got) != len(invoices) {
		t.Errorf("All sentinel should bypass regardless of other selections, got %d", len(got))
	}
}

func TestFilterByStatusMatchesCaseInsensitively(t *testing.T) {
	got := FilterByStatus(filterFixture(), []string{"PENDING"})
	if len(got) != 2 {
		t.Fatalf("expected 2 pending invoices, got %d", len(got))
	}
	if got[0].ID != "XM9141" || got[1].ID != "AA1449" {
		t.Errorf("expected collection order preserved, got %v, %v", got[0].ID, got[1].ID)
	}
}

func TestFilterByStatusMultipleSelections(t *testing.T) {
	got := FilterByStatus(filterFixture(), []string{"Draft", "Paid"})
	if len(got) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(got))
	}
	if got[0].ID != "RT3080" || got[1].ID != "FV2353" {
		t.Errorf("unexpected selection: %v, %v", got[0].ID, got[1].ID)
	}
}

func TestFilterByStatusEmptySelection(t *testing.T) {
	if got := FilterByStatus(filterFixture(), nil); len(got) != 0 {
		t.Errorf("no selected statuses should match nothing, got %d", len(got))
	}
}

func TestFilterOptionsOrder(t *testing.T) {
	opts := FilterOptions()
	want := []string{"All", "Draft", "Pending", "Paid"}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(opts))
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Errorf("option %d = %q, want %q", i, opts[i], want[i])
		}
	}
}
