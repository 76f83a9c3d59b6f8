// =============================================================================
// POS to IIF Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file covers:
//   1. Directory settings for the batch convert command
//   2. Ledger rules (accounts, customer label, reconciliation policy)
//   3. HTTP server settings for the serve command
//
// All settings have working defaults; an absent config file yields a fully
// usable configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CANCELLATION POLICIES
// =============================================================================

// CancellationPolicy selects how sale rows are netted against void rows that
// share the same (bill, item code) key. The POS export variants in the wild
// disagree on this, so the policy is an explicit configuration choice.
const (
	// PolicyQuantity nets summed quantities per key and emits a single
	// prorated line per surviving key. This is the default.
	PolicyQuantity = "quantity"

	// PolicyCount nets row counts per key and keeps the earliest surviving
	// sale rows unchanged.
	PolicyCount = "count"

	// PolicyNone skips netting entirely: every sale row is kept as-is and
	// void rows are dropped.
	PolicyNone = "none"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for POS export files (.xlsx, .csv).
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where generated IIF files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where input files are moved after
	// successful conversion. Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// LEDGER RULES
	// =========================================================================

	Ledger LedgerRules `yaml:"ledger"`

	// =========================================================================
	// SERVER SETTINGS
	// =========================================================================

	Server ServerSettings `yaml:"server"`
}

// LedgerRules controls how bills are reconciled and rendered into IIF.
type LedgerRules struct {
	// ARAccount is the accounts-receivable account on TRNS records.
	// Default: "Accounts Receivable"
	ARAccount string `yaml:"ar_account"`

	// RevenueAccount is the income account on SPL records.
	// Default: "Sales Revenue"
	RevenueAccount string `yaml:"revenue_account"`

	// CustomerName is the NAME field on every record. POS walk-in sales have
	// no customer identity, so a fixed label is used. Default: "Walk In"
	CustomerName string `yaml:"customer_name"`

	// CancellationPolicy is one of "quantity", "count", "none".
	// Default: "quantity"
	CancellationPolicy string `yaml:"cancellation_policy"`

	// ReturnCreditMemos controls return-only bills. When true (the default)
	// a bill whose rows are all returns is emitted as a CREDIT MEMO with its
	// total negated. When false such bills are excluded from the output.
	ReturnCreditMemos *bool `yaml:"return_credit_memos"`

	// DocNumberPad is the zero-pad width applied to numeric bill numbers in
	// the document number, e.g. pad 2 turns bill 7 into "INV05/07".
	// Non-numeric bill numbers are used verbatim. Default: 2
	DocNumberPad int `yaml:"doc_number_pad"`
}

// ServerSettings configures the HTTP upload surface.
type ServerSettings struct {
	// ListenAddr is the address the server binds to. Default: ":8080"
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins is the CORS allow-list for browser uploads.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxUploadBytes caps the accepted upload size. POS exports are small;
	// anything larger than the default 16 MiB is rejected.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// ReturnsAsCreditMemos reports the effective return-only-bill policy.
func (r LedgerRules) ReturnsAsCreditMemos() bool {
	return r.ReturnCreditMemos == nil || *r.ReturnCreditMemos
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults, and
// validates it. A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: run on defaults.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}

	if cfg.Ledger.ARAccount == "" {
		cfg.Ledger.ARAccount = "Accounts Receivable"
	}
	if cfg.Ledger.RevenueAccount == "" {
		cfg.Ledger.RevenueAccount = "Sales Revenue"
	}
	if cfg.Ledger.CustomerName == "" {
		cfg.Ledger.CustomerName = "Walk In"
	}
	if cfg.Ledger.CancellationPolicy == "" {
		cfg.Ledger.CancellationPolicy = PolicyQuantity
	}
	if cfg.Ledger.DocNumberPad == 0 {
		cfg.Ledger.DocNumberPad = 2
	}

	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 16 << 20
	}
}

// Validate checks the configuration for values the converter cannot run with.
func Validate(cfg *Config) error {
	switch cfg.Ledger.CancellationPolicy {
	case PolicyQuantity, PolicyCount, PolicyNone:
	default:
		return fmt.Errorf("unknown cancellation_policy %q (expected %q, %q or %q)",
			cfg.Ledger.CancellationPolicy, PolicyQuantity, PolicyCount, PolicyNone)
	}

	if cfg.Ledger.DocNumberPad < 0 {
		return fmt.Errorf("doc_number_pad must not be negative, got %d", cfg.Ledger.DocNumberPad)
	}
	if cfg.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must not be negative, got %d", cfg.Server.MaxUploadBytes)
	}

	return nil
}
