package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Invoices.PageSize != 10 {
		t.Errorf("expected page size 10, got %d", cfg.Invoices.PageSize)
	}
	if cfg.Invoices.DefaultPaymentTerms != 30 {
		t.Errorf("expected default terms 30, got %d", cfg.Invoices.DefaultPaymentTerms)
	}
	if cfg.Invoices.LoadDelayMillis != 500 {
		t.Errorf("expected load delay 500ms, got %d", cfg.Invoices.LoadDelayMillis)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected dark theme default, got %q", cfg.UI.Theme)
	}
	if cfg.Database.Path == "" {
		t.Error("database path should have a default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Invoices.PageSize != 10 {
		t.Errorf("expected defaults, got page size %d", cfg.Invoices.PageSize)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billfold", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.Theme = "light"
	cfg.UI.Currency = "$"
	cfg.Invoices.PageSize = 5
	cfg.Sender.City = "London"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.UI.Theme != "light" || loaded.UI.Currency != "$" {
		t.Errorf("UI settings not round-tripped: %+v", loaded.UI)
	}
	if loaded.Invoices.PageSize != 5 {
		t.Errorf("page size not round-tripped: %d", loaded.Invoices.PageSize)
	}
	if loaded.Sender.City != "London" {
		t.Errorf("sender not round-tripped: %+v", loaded.Sender)
	}
	// fields absent from the file keep their defaults
	if loaded.Invoices.DefaultPaymentTerms != 30 {
		t.Errorf("expected default terms preserved, got %d", loaded.Invoices.DefaultPaymentTerms)
	}
}
