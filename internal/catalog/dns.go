package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func dnsTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_dns_info",
			Description: "Get the DNS configuration: upstream servers, bootstrap servers, cache settings, rate limit, and blocking mode.",
			Category:    tools.CategoryDNS,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "dns_info")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				writeList(&b, "Upstream DNS", strs(m, "upstream_dns"))
				writeList(&b, "Bootstrap DNS", strs(m, "bootstrap_dns"))
				if mode := str(m, "upstream_mode"); mode != "" {
					fmt.Fprintf(&b, "Upstream mode: %s\n", mode)
				}
				fmt.Fprintf(&b, "Cache size: %d bytes\n", num(m, "cache_size"))
				fmt.Fprintf(&b, "Rate limit: %d req/s per client\n", num(m, "ratelimit"))
				fmt.Fprintf(&b, "DNSSEC: %s\n", onOff(boolField(m, "dnssec_enabled")))
				fmt.Fprintf(&b, "EDNS client subnet: %s\n", onOff(boolField(m, "edns_cs_enabled")))
				fmt.Fprintf(&b, "Blocking mode: %s\n", str(m, "blocking_mode"))
				return b.String(), nil
			},
		},
		{
			Name: "set_dns_config",
			Description: "Update the DNS configuration. Only the parameters you supply are changed; " +
				"everything else keeps its current value.",
			Category: tools.CategoryDNS,
			Tier:     tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"upstream_dns":    strListProp("Upstream DNS servers"),
					"bootstrap_dns":   strListProp("Bootstrap DNS servers for resolving DoH/DoT upstreams"),
					"upstream_mode":   {Type: "string", Description: "Upstream selection mode", Enum: []string{"load_balance", "parallel", "fastest_addr"}},
					"cache_size":      numProp("DNS cache size in bytes"),
					"cache_ttl_min":   numProp("Minimum override TTL"),
					"cache_ttl_max":   numProp("Maximum override TTL"),
					"ratelimit":       numProp("Requests per second per client, 0 disables"),
					"dnssec_enabled":  boolProp("Validate DNSSEC"),
					"edns_cs_enabled": boolProp("Send EDNS client subnet"),
					"blocking_mode":   {Type: "string", Description: "How blocked domains are answered", Enum: []string{"default", "refused", "nxdomain", "null_ip", "custom_ip"}},
					"blocking_ipv4":   strProp("IPv4 answer for blocking_mode=custom_ip"),
					"blocking_ipv6":   strProp("IPv6 answer for blocking_mode=custom_ip"),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if len(args) == 0 {
					return "", fmt.Errorf("no DNS settings supplied")
				}
				body := map[string]any{}
				setIf(body, args,
					"upstream_dns", "bootstrap_dns", "upstream_mode", "cache_size",
					"cache_ttl_min", "cache_ttl_max", "ratelimit", "dnssec_enabled",
					"edns_cs_enabled", "blocking_mode", "blocking_ipv4", "blocking_ipv6")
				if _, err := c.Post(ctx, "dns_config", body); err != nil {
					return "", err
				}
				keys := make([]string, 0, len(body))
				for k := range body {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				return fmt.Sprintf("DNS configuration updated (%s).", strings.Join(keys, ", ")), nil
			},
		},
		{
			Name:        "test_upstreams",
			Description: "Test a set of upstream DNS servers without changing the configuration. Reports per-server reachability.",
			Category:    tools.CategoryDNS,
			Tier:        tools.TierReadOnly,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"upstream_dns":  strListProp("Upstream servers to test"),
					"bootstrap_dns": strListProp("Bootstrap servers used during the test"),
				},
				Required: []string{"upstream_dns"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{"upstream_dns": args["upstream_dns"]}
				setIf(body, args, "bootstrap_dns")
				v, err := c.Post(ctx, "test_upstream_dns", body)
				if err != nil {
					return "", err
				}
				results := asMap(v)
				if len(results) == 0 {
					return "No results returned.", nil
				}
				servers := make([]string, 0, len(results))
				for server := range results {
					servers = append(servers, server)
				}
				sort.Strings(servers)
				var b strings.Builder
				for _, server := range servers {
					fmt.Fprintf(&b, "%s: %v\n", server, results[server])
				}
				return b.String(), nil
			},
		},
		{
			Name:        "clear_dns_cache",
			Description: "Clear the DNS cache. Subsequent queries are resolved from upstreams again.",
			Category:    tools.CategoryDNS,
			Tier:        tools.TierFull,
			Destructive: true,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "cache_clear", nil); err != nil {
					return "", err
				}
				return "DNS cache cleared.", nil
			},
		},
	}
}
