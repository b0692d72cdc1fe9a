// Package config loads the server configuration from ADGUARD_* environment
// variables. Loading fails fast, before any network activity, and error
// messages never carry credential values.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

// Config is the immutable server configuration. It is owned by the entry
// point and passed by reference everywhere else.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Access   tools.Tier
	// Categories is the allowlist from ADGUARD_CATEGORIES; empty means
	// unrestricted.
	Categories         []tools.Category
	ConfirmDestructive bool
	Debug              bool
	Timeout            time.Duration
	// AuditDB is the SQLite audit log path; empty disables auditing.
	AuditDB string
}

var envKeys = []string{
	"base_url", "username", "password", "access", "categories",
	"confirm_destructive", "debug", "timeout", "audit_db",
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ADGUARD")
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetDefault("access", string(tools.TierFull))
	v.SetDefault("timeout", "30s")

	cfg := &Config{
		BaseURL:            strings.TrimRight(v.GetString("base_url"), "/"),
		Username:           v.GetString("username"),
		Password:           v.GetString("password"),
		Access:             tools.Tier(v.GetString("access")),
		ConfirmDestructive: v.GetBool("confirm_destructive"),
		Debug:              v.GetBool("debug"),
		Timeout:            v.GetDuration("timeout"),
		AuditDB:            v.GetString("audit_db"),
	}

	for _, tag := range strings.Split(v.GetString("categories"), ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		cfg.Categories = append(cfg.Categories, tools.Category(tag))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("ADGUARD_BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("ADGUARD_BASE_URL must be an http(s) URL")
	}
	if c.Username == "" {
		return fmt.Errorf("ADGUARD_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("ADGUARD_PASSWORD is required")
	}
	if c.Access != tools.TierReadOnly && c.Access != tools.TierFull {
		return fmt.Errorf("ADGUARD_ACCESS must be %q or %q, got %q",
			tools.TierReadOnly, tools.TierFull, c.Access)
	}
	for _, cat := range c.Categories {
		if !tools.ValidCategory(cat) {
			return fmt.Errorf("ADGUARD_CATEGORIES contains unknown category %q", cat)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("ADGUARD_TIMEOUT must be positive")
	}
	return nil
}

// CategorySet returns the allowlist as a lookup set, or nil when the
// configuration is unrestricted.
func (c *Config) CategorySet() map[tools.Category]bool {
	if len(c.Categories) == 0 {
		return nil
	}
	set := make(map[tools.Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		set[cat] = true
	}
	return set
}
