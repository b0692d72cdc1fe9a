package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func clientTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "list_clients",
			Description: "List all configured clients and auto-discovered clients, with their identifiers and per-client settings.",
			Category:    tools.CategoryClients,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "clients")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				configured := asList(m["clients"])
				fmt.Fprintf(&b, "Configured clients (%d):\n", len(configured))
				for _, client := range configured {
					cm := asMap(client)
					fmt.Fprintf(&b, "  - %s [%s]", str(cm, "name"), strings.Join(strs(cm, "ids"), ", "))
					if tags := strs(cm, "tags"); len(tags) > 0 {
						fmt.Fprintf(&b, " tags: %s", strings.Join(tags, ","))
					}
					if !boolField(cm, "use_global_settings") {
						b.WriteString(" (custom settings)")
					}
					b.WriteString("\n")
				}
				if auto := asList(m["auto_clients"]); len(auto) > 0 {
					fmt.Fprintf(&b, "Auto-discovered clients (%d):\n", len(auto))
					for _, client := range auto {
						cm := asMap(client)
						fmt.Fprintf(&b, "  - %s (%s, %s)\n", str(cm, "ip"), str(cm, "name"), str(cm, "source"))
					}
				}
				return b.String(), nil
			},
		},
		{
			Name:        "find_clients",
			Description: "Find clients by IP address, CIDR, MAC address, or client ID.",
			Category:    tools.CategoryClients,
			Tier:        tools.TierReadOnly,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"id": strProp("IP, CIDR, MAC, or client ID to look up"),
				},
				Required: []string{"id"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				path := query("clients/find", map[string]string{"ip0": strArg(args, "id")})
				v, err := c.Get(ctx, path)
				if err != nil {
					return "", err
				}
				matches := asList(v)
				if len(matches) == 0 {
					return fmt.Sprintf("No client found for %s.", strArg(args, "id")), nil
				}
				return jsonBlock(matches), nil
			},
		},
		{
			Name:        "add_client",
			Description: "Add a configured client with per-client protection settings.",
			Category:    tools.CategoryClients,
			Tier:        tools.TierFull,
			Schema:      clientSchema([]string{"name", "ids"}),
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "clients/add", clientBody(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Client %q added.", strArg(args, "name")), nil
			},
		},
		{
			Name:        "update_client",
			Description: "Update a configured client's identifiers or settings. Supply the current name and the full new definition.",
			Category:    tools.CategoryClients,
			Tier:        tools.TierFull,
			Schema: func() tools.Schema {
				s := clientSchema([]string{"name"})
				s.Properties["new_name"] = strProp("New client name (defaults to the current name)")
				return s
			}(),
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				data := clientBody(args)
				if newName := strArg(args, "new_name"); newName != "" {
					data["name"] = newName
				}
				body := map[string]any{"name": strArg(args, "name"), "data": data}
				if _, err := c.Post(ctx, "clients/update", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Client %q updated.", strArg(args, "name")), nil
			},
		},
		{
			Name:        "delete_client",
			Description: "Delete a configured client by name.",
			Category:    tools.CategoryClients,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"name": strProp("Client name to delete"),
				},
				Required: []string{"name"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{"name": strArg(args, "name")}
				if _, err := c.Post(ctx, "clients/delete", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Client %q deleted.", strArg(args, "name")), nil
			},
		},
	}
}

func clientSchema(required []string) tools.Schema {
	return tools.Schema{
		Properties: map[string]tools.Property{
			"name":                 strProp("Client name"),
			"ids":                  strListProp("Identifiers: IPs, CIDRs, MACs, or client IDs"),
			"tags":                 strListProp("Client tags"),
			"use_global_settings":  boolProp("Inherit global protection settings (default true)"),
			"filtering_enabled":    boolProp("Per-client filtering"),
			"safebrowsing_enabled": boolProp("Per-client safe browsing"),
			"parental_enabled":     boolProp("Per-client parental control"),
			"blocked_services":     strListProp("Service IDs blocked for this client"),
			"upstreams":            strListProp("Per-client upstream DNS servers"),
		},
		Required: required,
	}
}

func clientBody(args map[string]any) map[string]any {
	body := map[string]any{
		"name":                strArg(args, "name"),
		"use_global_settings": true,
	}
	setIf(body, args,
		"ids", "tags", "use_global_settings", "filtering_enabled",
		"safebrowsing_enabled", "parental_enabled", "blocked_services", "upstreams")
	return body
}
