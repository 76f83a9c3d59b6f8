package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Ledger.CancellationPolicy != PolicyQuantity {
		t.Errorf("default policy: got %q, want %q", cfg.Ledger.CancellationPolicy, PolicyQuantity)
	}
	if cfg.Ledger.ARAccount != "Accounts Receivable" {
		t.Errorf("default AR account: got %q", cfg.Ledger.ARAccount)
	}
	if cfg.Ledger.CustomerName != "Walk In" {
		t.Errorf("default customer: got %q", cfg.Ledger.CustomerName)
	}
	if !cfg.Ledger.ReturnsAsCreditMemos() {
		t.Error("return credit memos should default to enabled")
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("default listen addr: got %q", cfg.Server.ListenAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/in
ledger:
  revenue_account: POS Income
  cancellation_policy: count
  return_credit_memos: false
  doc_number_pad: 4
server:
  listen_addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.InputDir != "/data/in" {
		t.Errorf("input dir: got %q", cfg.InputDir)
	}
	if cfg.Ledger.RevenueAccount != "POS Income" {
		t.Errorf("revenue account: got %q", cfg.Ledger.RevenueAccount)
	}
	if cfg.Ledger.CancellationPolicy != PolicyCount {
		t.Errorf("policy: got %q", cfg.Ledger.CancellationPolicy)
	}
	if cfg.Ledger.ReturnsAsCreditMemos() {
		t.Error("return credit memos should be disabled")
	}
	if cfg.Ledger.DocNumberPad != 4 {
		t.Errorf("doc number pad: got %d", cfg.Ledger.DocNumberPad)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("listen addr: got %q", cfg.Server.ListenAddr)
	}

	// Untouched settings still get defaults.
	if cfg.Ledger.ARAccount != "Accounts Receivable" {
		t.Errorf("AR account default lost: got %q", cfg.Ledger.ARAccount)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeConfig(t, "ledger:\n  cancellation_policy: sometimes\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown cancellation policy")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "ledger: [\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
