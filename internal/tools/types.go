package tools

import "context"

// Tier is the minimum access level a tool requires. Read-only tools are
// always exposable; full-tier tools are withheld when the server runs with
// ADGUARD_ACCESS=read-only.
type Tier string

const (
	TierReadOnly Tier = "read-only"
	TierFull     Tier = "full"
)

// Category tags a tool with the AdGuard Home functional domain it touches.
type Category string

const (
	CategoryStatus          Category = "status"
	CategoryDNS             Category = "dns"
	CategoryQueryLog        Category = "querylog"
	CategoryStats           Category = "stats"
	CategoryFiltering       Category = "filtering"
	CategorySafeBrowsing    Category = "safebrowsing"
	CategoryParental        Category = "parental"
	CategorySafeSearch      Category = "safesearch"
	CategoryClients         Category = "clients"
	CategoryDHCP            Category = "dhcp"
	CategoryRewrite         Category = "rewrite"
	CategoryTLS             Category = "tls"
	CategoryBlockedServices Category = "blocked_services"
	CategoryAccess          Category = "access"
	CategoryInstall         Category = "install"
	CategoryMobileConfig    Category = "mobileconfig"
)

// AllCategories lists every known category tag, in catalog order.
var AllCategories = []Category{
	CategoryStatus, CategoryDNS, CategoryQueryLog, CategoryStats,
	CategoryFiltering, CategorySafeBrowsing, CategoryParental,
	CategorySafeSearch, CategoryClients, CategoryDHCP, CategoryRewrite,
	CategoryTLS, CategoryBlockedServices, CategoryAccess, CategoryInstall,
	CategoryMobileConfig,
}

// ValidCategory reports whether c is one of the known category tags.
func ValidCategory(c Category) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Property describes one input parameter in a tool schema.
type Property struct {
	Type        string   `yaml:"type"`
	Description string   `yaml:"description,omitempty"`
	Enum        []string `yaml:"enum,omitempty"`
	// Items constrains element types when Type is "array".
	Items *Property `yaml:"items,omitempty"`
}

// Schema is the declarative input shape of a tool, validated against the
// incoming arguments map before the handler runs.
type Schema struct {
	Properties map[string]Property `yaml:"properties,omitempty"`
	Required   []string            `yaml:"required,omitempty"`
}

// HandlerFunc executes a tool call and returns human-readable text.
type HandlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Descriptor is the static definition of one callable tool. Descriptors are
// created at startup and never mutated.
type Descriptor struct {
	Name        string
	Description string
	Category    Category
	Tier        Tier
	// Destructive marks operations that discard remote state; when the
	// server runs with ADGUARD_CONFIRM_DESTRUCTIVE they demand an explicit
	// confirm argument.
	Destructive bool
	Schema      Schema
	Handler     HandlerFunc
}
