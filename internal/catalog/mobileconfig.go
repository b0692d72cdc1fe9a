package catalog

import (
	"context"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

// The mobileconfig endpoints return Apple property-list XML, not JSON, so
// these handlers use the raw client path.

func mobileConfigTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_doh_mobileconfig",
			Description: "Generate an Apple .mobileconfig profile configuring DNS-over-HTTPS for this server.",
			Category:    tools.CategoryMobileConfig,
			Tier:        tools.TierReadOnly,
			Schema:      mobileConfigSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return c.GetRaw(ctx, mobileConfigPath("apple/doh.mobileconfig", args))
			},
		},
		{
			Name:        "get_dot_mobileconfig",
			Description: "Generate an Apple .mobileconfig profile configuring DNS-over-TLS for this server.",
			Category:    tools.CategoryMobileConfig,
			Tier:        tools.TierReadOnly,
			Schema:      mobileConfigSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return c.GetRaw(ctx, mobileConfigPath("apple/dot.mobileconfig", args))
			},
		},
	}
}

var mobileConfigSchema = tools.Schema{
	Properties: map[string]tools.Property{
		"host":      strProp("DNS server hostname to embed in the profile"),
		"client_id": strProp("Optional client ID for per-device settings"),
	},
	Required: []string{"host"},
}

func mobileConfigPath(path string, args map[string]any) string {
	return query(path, map[string]string{
		"host":      strArg(args, "host"),
		"client_id": strArg(args, "client_id"),
	})
}
