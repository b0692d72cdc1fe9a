package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

// Safe browsing, parental control, and safe search share the same simple
// status/enable/disable endpoint shape.

func safeBrowsingTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_safe_browsing_status",
			Description: "Get whether safe browsing (malware/phishing protection) is enabled.",
			Category:    tools.CategorySafeBrowsing,
			Tier:        tools.TierReadOnly,
			Handler:     statusHandler(c, "safebrowsing/status", "Safe browsing"),
		},
		{
			Name:        "enable_safe_browsing",
			Description: "Enable safe browsing protection against malware and phishing domains.",
			Category:    tools.CategorySafeBrowsing,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "safebrowsing/enable", "Safe browsing enabled."),
		},
		{
			Name:        "disable_safe_browsing",
			Description: "Disable safe browsing protection.",
			Category:    tools.CategorySafeBrowsing,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "safebrowsing/disable", "Safe browsing disabled."),
		},
	}
}

func parentalTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_parental_status",
			Description: "Get whether parental control (adult content blocking) is enabled.",
			Category:    tools.CategoryParental,
			Tier:        tools.TierReadOnly,
			Handler:     statusHandler(c, "parental/status", "Parental control"),
		},
		{
			Name:        "enable_parental",
			Description: "Enable parental control to block adult content.",
			Category:    tools.CategoryParental,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "parental/enable", "Parental control enabled."),
		},
		{
			Name:        "disable_parental",
			Description: "Disable parental control.",
			Category:    tools.CategoryParental,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "parental/disable", "Parental control disabled."),
		},
	}
}

func safeSearchTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_safe_search_status",
			Description: "Get safe search enforcement status, including which search engines are covered.",
			Category:    tools.CategorySafeSearch,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "safesearch/status")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "Safe search: %s\n", onOff(boolField(m, "enabled")))
				for _, engine := range []string{"google", "bing", "duckduckgo", "yandex", "youtube", "pixabay"} {
					if v, ok := m[engine].(bool); ok {
						fmt.Fprintf(&b, "  %s: %s\n", engine, onOff(v))
					}
				}
				return b.String(), nil
			},
		},
		{
			Name:        "enable_safe_search",
			Description: "Enforce safe search on supported search engines.",
			Category:    tools.CategorySafeSearch,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "safesearch/enable", "Safe search enabled."),
		},
		{
			Name:        "disable_safe_search",
			Description: "Stop enforcing safe search.",
			Category:    tools.CategorySafeSearch,
			Tier:        tools.TierFull,
			Handler:     toggleHandler(c, "safesearch/disable", "Safe search disabled."),
		},
	}
}

func statusHandler(c *adguard.Client, path, label string) tools.HandlerFunc {
	return func(ctx context.Context, args map[string]any) (string, error) {
		v, err := c.Get(ctx, path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s\n", label, onOff(boolField(asMap(v), "enabled"))), nil
	}
}

func toggleHandler(c *adguard.Client, path, message string) tools.HandlerFunc {
	return func(ctx context.Context, args map[string]any) (string, error) {
		if _, err := c.Post(ctx, path, nil); err != nil {
			return "", err
		}
		return message, nil
	}
}
