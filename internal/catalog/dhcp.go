package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func dhcpTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_dhcp_status",
			Description: "Get DHCP server status: whether it is enabled, the address ranges, and current leases.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "dhcp/status")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "DHCP server: %s\n", onOff(boolField(m, "enabled")))
				fmt.Fprintf(&b, "Interface: %s\n", str(m, "interface_name"))
				if v4 := asMap(m["v4"]); len(v4) > 0 {
					fmt.Fprintf(&b, "IPv4 range: %s - %s (gateway %s, mask %s)\n",
						str(v4, "range_start"), str(v4, "range_end"),
						str(v4, "gateway_ip"), str(v4, "subnet_mask"))
				}
				writeLeases(&b, "Leases", asList(m["leases"]))
				writeLeases(&b, "Static leases", asList(m["static_leases"]))
				return b.String(), nil
			},
		},
		{
			Name:        "get_dhcp_interfaces",
			Description: "List network interfaces available for the DHCP server.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "dhcp/interfaces")
				if err != nil {
					return "", err
				}
				interfaces := asMap(v)
				if len(interfaces) == 0 {
					return "No interfaces available.", nil
				}
				var b strings.Builder
				for name, iface := range interfaces {
					im := asMap(iface)
					fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(strs(im, "ipv4_addresses"), ", "))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "set_dhcp_config",
			Description: "Configure the built-in DHCP server: interface, IPv4 range, gateway, and lease duration.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"enabled":        boolProp("Whether the DHCP server is on"),
					"interface_name": strProp("Network interface to serve on"),
					"gateway_ip":     strProp("Gateway IP"),
					"subnet_mask":    strProp("Subnet mask"),
					"range_start":    strProp("First address of the pool"),
					"range_end":      strProp("Last address of the pool"),
					"lease_duration": numProp("Lease duration in seconds"),
				},
				Required: []string{"enabled"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				enabled, _ := boolArg(args, "enabled")
				v4 := map[string]any{}
				setIf(v4, args, "gateway_ip", "subnet_mask", "range_start", "range_end", "lease_duration")
				body := map[string]any{"enabled": enabled, "v4": v4}
				setIf(body, args, "interface_name")
				if _, err := c.Post(ctx, "dhcp/set_config", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("DHCP server %s.", onOff(enabled)), nil
			},
		},
		{
			Name:        "add_static_lease",
			Description: "Add a static DHCP lease binding a MAC address to a fixed IP.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierFull,
			Schema:      leaseSchema(),
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "dhcp/add_static_lease", leaseBody(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Static lease added: %s -> %s.", strArg(args, "mac"), strArg(args, "ip")), nil
			},
		},
		{
			Name:        "remove_static_lease",
			Description: "Remove a static DHCP lease. The mac, ip, and hostname must match the existing lease.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierFull,
			Schema:      leaseSchema(),
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "dhcp/remove_static_lease", leaseBody(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Static lease removed: %s.", strArg(args, "mac")), nil
			},
		},
		{
			Name: "update_static_lease",
			Description: "Replace a static lease by removing the old binding and adding the new one. " +
				"The two steps are not atomic: if the add fails, the old lease is already gone.",
			Category: tools.CategoryDHCP,
			Tier:     tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"mac":          strProp("MAC address of the existing lease"),
					"ip":           strProp("Current fixed IP"),
					"hostname":     strProp("Current hostname"),
					"new_ip":       strProp("New fixed IP (defaults to current)"),
					"new_hostname": strProp("New hostname (defaults to current)"),
				},
				Required: []string{"mac", "ip"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				old := map[string]any{
					"mac":      strArg(args, "mac"),
					"ip":       strArg(args, "ip"),
					"hostname": strArg(args, "hostname"),
				}
				if _, err := c.Post(ctx, "dhcp/remove_static_lease", old); err != nil {
					return "", err
				}
				updated := map[string]any{
					"mac":      strArg(args, "mac"),
					"ip":       strArg(args, "ip"),
					"hostname": strArg(args, "hostname"),
				}
				if ip := strArg(args, "new_ip"); ip != "" {
					updated["ip"] = ip
				}
				if hostname := strArg(args, "new_hostname"); hostname != "" {
					updated["hostname"] = hostname
				}
				if _, err := c.Post(ctx, "dhcp/add_static_lease", updated); err != nil {
					return "", fmt.Errorf("old lease removed but adding replacement failed: %w", err)
				}
				return fmt.Sprintf("Static lease updated: %s -> %s.", strArg(args, "mac"), updated["ip"]), nil
			},
		},
		{
			Name:        "reset_dhcp",
			Description: "Reset the DHCP server configuration and drop all leases. This cannot be undone.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierFull,
			Destructive: true,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "dhcp/reset", nil); err != nil {
					return "", err
				}
				return "DHCP configuration reset.", nil
			},
		},
		{
			Name:        "find_active_dhcp",
			Description: "Probe a network interface for other active DHCP servers before enabling the built-in one.",
			Category:    tools.CategoryDHCP,
			Tier:        tools.TierReadOnly,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"interface": strProp("Interface to probe"),
				},
				Required: []string{"interface"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{"interface": strArg(args, "interface")}
				v, err := c.Post(ctx, "dhcp/find_active_dhcp", body)
				if err != nil {
					return "", err
				}
				m := asMap(v)
				if v4 := asMap(m["v4"]); len(v4) > 0 {
					if found := str(v4, "other_server"); found != "" {
						return fmt.Sprintf("Other DHCP server detection: %s\n", found), nil
					}
				}
				return jsonBlock(v), nil
			},
		},
	}
}

func leaseSchema() tools.Schema {
	return tools.Schema{
		Properties: map[string]tools.Property{
			"mac":      strProp("Client MAC address"),
			"ip":       strProp("Fixed IP to assign"),
			"hostname": strProp("Hostname for the lease"),
		},
		Required: []string{"mac", "ip"},
	}
}

func leaseBody(args map[string]any) map[string]any {
	return map[string]any{
		"mac":      strArg(args, "mac"),
		"ip":       strArg(args, "ip"),
		"hostname": strArg(args, "hostname"),
	}
}

func writeLeases(b *strings.Builder, label string, leases []any) {
	if len(leases) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", label, len(leases))
	for _, lease := range leases {
		lm := asMap(lease)
		fmt.Fprintf(b, "  - %s %s (%s)\n", str(lm, "mac"), str(lm, "ip"), str(lm, "hostname"))
	}
}
