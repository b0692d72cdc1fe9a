package catalog

import (
	"context"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func accessTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_access_list",
			Description: "Get the DNS access control lists: allowed clients, disallowed clients, and blocked hostnames.",
			Category:    tools.CategoryAccess,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "access/list")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				writeList(&b, "Allowed clients", strs(m, "allowed_clients"))
				writeList(&b, "Disallowed clients", strs(m, "disallowed_clients"))
				writeList(&b, "Blocked hosts", strs(m, "blocked_hosts"))
				if b.Len() == 0 {
					return "No access restrictions configured.", nil
				}
				return b.String(), nil
			},
		},
		{
			Name: "set_access_list",
			Description: "Replace the DNS access control lists. Each supplied list overwrites the existing one; " +
				"omitted lists are cleared, so pass the full desired state.",
			Category: tools.CategoryAccess,
			Tier:     tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"allowed_clients":    strListProp("Clients allowed to use the DNS server (IPs, CIDRs, client IDs)"),
					"disallowed_clients": strListProp("Clients refused by the DNS server"),
					"blocked_hosts":      strListProp("Hostnames refused for all clients"),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{
					"allowed_clients":    strsArg(args, "allowed_clients"),
					"disallowed_clients": strsArg(args, "disallowed_clients"),
					"blocked_hosts":      strsArg(args, "blocked_hosts"),
				}
				if _, err := c.Post(ctx, "access/set", body); err != nil {
					return "", err
				}
				return "Access lists updated.", nil
			},
		},
	}
}
