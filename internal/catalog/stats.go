package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func statsTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_stats",
			Description: "Get DNS statistics: query counts, blocked counts, average processing time, and top clients/domains.",
			Category:    tools.CategoryStats,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "stats")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "DNS queries: %d\n", num(m, "num_dns_queries"))
				fmt.Fprintf(&b, "Blocked by filters: %d\n", num(m, "num_blocked_filtering"))
				fmt.Fprintf(&b, "Blocked by safe browsing: %d\n", num(m, "num_replaced_safebrowsing"))
				fmt.Fprintf(&b, "Blocked by parental control: %d\n", num(m, "num_replaced_parental"))
				fmt.Fprintf(&b, "Safe search enforced: %d\n", num(m, "num_replaced_safesearch"))
				if avg, ok := m["avg_processing_time"].(float64); ok {
					fmt.Fprintf(&b, "Average processing time: %.2f ms\n", avg*1000)
				}
				writeTopList(&b, "Top queried domains", asList(m["top_queried_domains"]))
				writeTopList(&b, "Top blocked domains", asList(m["top_blocked_domains"]))
				writeTopList(&b, "Top clients", asList(m["top_clients"]))
				return b.String(), nil
			},
		},
		{
			Name:        "get_stats_config",
			Description: "Get the statistics retention interval.",
			Category:    tools.CategoryStats,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "stats_info")
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Statistics retention: %d days\n", num(asMap(v), "interval")), nil
			},
		},
		{
			Name:        "set_stats_config",
			Description: "Set the statistics retention interval in days.",
			Category:    tools.CategoryStats,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"interval": numProp("Retention interval in days"),
				},
				Required: []string{"interval"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{"interval": args["interval"]}
				if _, err := c.Post(ctx, "stats_config", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Statistics retention set to %d days.", intArg(args, "interval", 0)), nil
			},
		},
		{
			Name:        "reset_stats",
			Description: "Reset all DNS statistics to zero. This cannot be undone.",
			Category:    tools.CategoryStats,
			Tier:        tools.TierFull,
			Destructive: true,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "stats_reset", nil); err != nil {
					return "", err
				}
				return "Statistics reset.", nil
			},
		},
	}
}

// writeTopList renders AdGuard's top-N format: a list of single-entry
// objects mapping name to count.
func writeTopList(b *strings.Builder, label string, entries []any) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, entry := range entries {
		for name, count := range asMap(entry) {
			if f, ok := count.(float64); ok {
				fmt.Fprintf(b, "  %s: %d\n", name, int64(f))
			}
		}
	}
}
