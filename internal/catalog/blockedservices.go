package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func blockedServiceTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_blocked_services",
			Description: "Get the list of currently blocked services (social media, streaming, gaming, etc).",
			Category:    tools.CategoryBlockedServices,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "blocked_services/get")
				if err != nil {
					return "", err
				}
				ids := serviceIDs(v)
				if len(ids) == 0 {
					return "No services are blocked.", nil
				}
				return fmt.Sprintf("Blocked services (%d): %s\n", len(ids), strings.Join(ids, ", ")), nil
			},
		},
		{
			Name:        "list_all_blocked_services",
			Description: "List every service that can be blocked, with its ID to use in set_blocked_services.",
			Category:    tools.CategoryBlockedServices,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "blocked_services/all")
				if err != nil {
					return "", err
				}
				services := asList(asMap(v)["blocked_services"])
				if len(services) == 0 {
					return "No services available.", nil
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%d services:\n", len(services))
				for _, service := range services {
					sm := asMap(service)
					fmt.Fprintf(&b, "  %s: %s\n", str(sm, "id"), str(sm, "name"))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "set_blocked_services",
			Description: "Replace the set of blocked services. Pass the complete list of service IDs; an empty list unblocks everything.",
			Category:    tools.CategoryBlockedServices,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"ids": strListProp("Complete list of service IDs to block"),
				},
				Required: []string{"ids"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				ids := strsArg(args, "ids")
				if _, err := c.Post(ctx, "blocked_services/set", ids); err != nil {
					return "", err
				}
				if len(ids) == 0 {
					return "All services unblocked.", nil
				}
				return fmt.Sprintf("Now blocking %d services: %s.", len(ids), strings.Join(ids, ", ")), nil
			},
		},
	}
}

// serviceIDs handles both response shapes: the modern object with an ids
// field and the legacy bare array.
func serviceIDs(v any) []string {
	if m := asMap(v); m != nil {
		return strs(m, "ids")
	}
	var ids []string
	for _, item := range asList(v) {
		if s, ok := item.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids
}
