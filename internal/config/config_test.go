package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/michaelbrown/adguard-mcp/internal/config"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("ADGUARD_BASE_URL", "http://dns.local:3000")
	t.Setenv("ADGUARD_USERNAME", "admin")
	t.Setenv("ADGUARD_PASSWORD", "hunter2")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Access != tools.TierFull {
		t.Errorf("Access = %q, want full", cfg.Access)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Categories != nil {
		t.Errorf("Categories = %v, want unrestricted", cfg.Categories)
	}
	if cfg.CategorySet() != nil {
		t.Error("CategorySet should be nil when unrestricted")
	}
	if cfg.ConfirmDestructive || cfg.Debug {
		t.Error("boolean flags should default to false")
	}
}

func TestLoadStripsTrailingSlash(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_BASE_URL", "http://dns.local:3000///")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://dns.local:3000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoadCategories(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_CATEGORIES", "dns, stats ,tls")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	set := cfg.CategorySet()
	for _, want := range []tools.Category{tools.CategoryDNS, tools.CategoryStats, tools.CategoryTLS} {
		if !set[want] {
			t.Errorf("category %s missing from set", want)
		}
	}
	if len(set) != 3 {
		t.Errorf("set has %d entries, want 3", len(set))
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_CATEGORIES", "dns,bogus")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should reject unknown category")
	}
}

func TestLoadRejectsBadAccess(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_ACCESS", "admin")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should reject unknown access tier")
	}
}

func TestLoadRequiresCoreSettings(t *testing.T) {
	cases := []struct{ unset string }{
		{"ADGUARD_BASE_URL"},
		{"ADGUARD_USERNAME"},
		{"ADGUARD_PASSWORD"},
	}
	for _, tc := range cases {
		t.Run(tc.unset, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.unset, "")

			_, err := config.Load()
			if err == nil {
				t.Fatal("Load should fail")
			}
			// Config errors must name the variable, never its value.
			if !strings.Contains(err.Error(), tc.unset) {
				t.Errorf("error %q should mention %s", err, tc.unset)
			}
			if strings.Contains(err.Error(), "hunter2") {
				t.Errorf("error leaks password: %q", err)
			}
		})
	}
}

func TestLoadRejectsNonHTTPURL(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_BASE_URL", "ftp://dns.local")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load should reject non-http URL")
	}
}

func TestLoadReadOnlyAccess(t *testing.T) {
	setRequired(t)
	t.Setenv("ADGUARD_ACCESS", "read-only")
	t.Setenv("ADGUARD_CONFIRM_DESTRUCTIVE", "true")
	t.Setenv("ADGUARD_TIMEOUT", "5s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Access != tools.TierReadOnly {
		t.Errorf("Access = %q", cfg.Access)
	}
	if !cfg.ConfirmDestructive {
		t.Error("ConfirmDestructive should be true")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}
