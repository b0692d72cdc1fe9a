package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func statusTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_status",
			Description: "Get AdGuard Home server status: version, DNS addresses and ports, and whether protection is running.",
			Category:    tools.CategoryStatus,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "status")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "AdGuard Home %s\n", str(m, "version"))
				fmt.Fprintf(&b, "Protection: %s\n", onOff(boolField(m, "protection_enabled")))
				fmt.Fprintf(&b, "Running: %v\n", boolField(m, "running"))
				fmt.Fprintf(&b, "DNS port: %d, HTTP port: %d\n", num(m, "dns_port"), num(m, "http_port"))
				writeList(&b, "DNS addresses", strs(m, "dns_addresses"))
				if lang := str(m, "language"); lang != "" {
					fmt.Fprintf(&b, "Language: %s\n", lang)
				}
				return b.String(), nil
			},
		},
		{
			Name:        "get_profile",
			Description: "Get the profile of the authenticated AdGuard Home user.",
			Category:    tools.CategoryStatus,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "profile")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				return fmt.Sprintf("User: %s\nLanguage: %s\nTheme: %s\n",
					str(m, "name"), str(m, "language"), str(m, "theme")), nil
			},
		},
		{
			Name:        "set_protection",
			Description: "Enable or disable AdGuard Home protection globally. An optional duration (milliseconds) pauses protection temporarily.",
			Category:    tools.CategoryStatus,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"enabled":  boolProp("Whether protection should be on"),
					"duration": numProp("Optional pause duration in milliseconds (only with enabled=false)"),
				},
				Required: []string{"enabled"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				enabled, _ := boolArg(args, "enabled")
				body := map[string]any{"enabled": enabled}
				if d := intArg(args, "duration", 0); d > 0 {
					body["duration"] = d
				}
				if _, err := c.Post(ctx, "protection", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Protection %s.", onOff(enabled)), nil
			},
		},
	}
}
