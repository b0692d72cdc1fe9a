package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func filteringTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_filtering_status",
			Description: "Get filtering status: whether it is enabled, the update interval, and all blocklists and allowlists with their rule counts.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "filtering/status")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "Filtering: %s\n", onOff(boolField(m, "enabled")))
				fmt.Fprintf(&b, "Update interval: %d hours\n", num(m, "interval"))
				writeFilterList(&b, "Blocklists", asList(m["filters"]))
				writeFilterList(&b, "Allowlists", asList(m["whitelist_filters"]))
				if rules := strs(m, "user_rules"); len(rules) > 0 {
					fmt.Fprintf(&b, "Custom rules: %d\n", len(rules))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "set_filtering_config",
			Description: "Enable or disable filtering and set the blocklist update interval.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"enabled":  boolProp("Whether filtering is on"),
					"interval": numProp("Blocklist update interval in hours"),
				},
				Required: []string{"enabled"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				enabled, _ := boolArg(args, "enabled")
				body := map[string]any{"enabled": enabled, "interval": intArg(args, "interval", 24)}
				if _, err := c.Post(ctx, "filtering/config", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Filtering %s.", onOff(enabled)), nil
			},
		},
		{
			Name:        "add_filter_url",
			Description: "Subscribe to a filter list by URL. Set whitelist=true to add it as an allowlist.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"name":      strProp("Human-readable list name"),
					"url":       strProp("Filter list URL"),
					"whitelist": boolProp("Add as allowlist instead of blocklist"),
				},
				Required: []string{"name", "url"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				whitelist, _ := boolArg(args, "whitelist")
				body := map[string]any{
					"name":      strArg(args, "name"),
					"url":       strArg(args, "url"),
					"whitelist": whitelist,
				}
				if _, err := c.Post(ctx, "filtering/add_url", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Filter %q added.", strArg(args, "name")), nil
			},
		},
		{
			Name:        "remove_filter_url",
			Description: "Unsubscribe from a filter list by URL.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"url":       strProp("Filter list URL to remove"),
					"whitelist": boolProp("The list is an allowlist"),
				},
				Required: []string{"url"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				whitelist, _ := boolArg(args, "whitelist")
				body := map[string]any{"url": strArg(args, "url"), "whitelist": whitelist}
				if _, err := c.Post(ctx, "filtering/remove_url", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Filter %s removed.", strArg(args, "url")), nil
			},
		},
		{
			Name:        "set_filter_url",
			Description: "Update a subscribed filter list: rename it, change its URL, or enable/disable it.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"url":       strProp("Current URL of the list"),
					"name":      strProp("New name"),
					"new_url":   strProp("New URL (defaults to the current one)"),
					"enabled":   boolProp("Whether the list is active"),
					"whitelist": boolProp("The list is an allowlist"),
				},
				Required: []string{"url", "name", "enabled"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				enabled, _ := boolArg(args, "enabled")
				whitelist, _ := boolArg(args, "whitelist")
				newURL := strArg(args, "new_url")
				if newURL == "" {
					newURL = strArg(args, "url")
				}
				body := map[string]any{
					"url":       strArg(args, "url"),
					"whitelist": whitelist,
					"data": map[string]any{
						"name":    strArg(args, "name"),
						"url":     newURL,
						"enabled": enabled,
					},
				}
				if _, err := c.Post(ctx, "filtering/set_url", body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Filter %q updated.", strArg(args, "name")), nil
			},
		},
		{
			Name:        "refresh_filters",
			Description: "Force an update of all subscribed filter lists.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"whitelist": boolProp("Refresh allowlists instead of blocklists"),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				whitelist, _ := boolArg(args, "whitelist")
				v, err := c.Post(ctx, "filtering/refresh", map[string]any{"whitelist": whitelist})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Refreshed %d filter lists.", num(asMap(v), "updated")), nil
			},
		},
		{
			Name:        "check_host",
			Description: "Check how a hostname would be filtered: blocked, allowed, rewritten, or passed through, and by which rule.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierReadOnly,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"name":   strProp("Hostname to check"),
					"client": strProp("Check from this client's perspective"),
					"qtype":  strProp("DNS query type (default A)"),
				},
				Required: []string{"name"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				path := query("filtering/check_host", map[string]string{
					"name":   strArg(args, "name"),
					"client": strArg(args, "client"),
					"qtype":  strArg(args, "qtype"),
				})
				v, err := c.Get(ctx, path)
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "%s: %s\n", strArg(args, "name"), str(m, "reason"))
				for _, rule := range asList(m["rules"]) {
					r := asMap(rule)
					fmt.Fprintf(&b, "  rule: %s (filter %d)\n", str(r, "text"), num(r, "filter_list_id"))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "get_custom_rules",
			Description: "Get the user-defined custom filtering rules.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "filtering/status")
				if err != nil {
					return "", err
				}
				rules := strs(asMap(v), "user_rules")
				if len(rules) == 0 {
					return "No custom rules defined.", nil
				}
				return strings.Join(rules, "\n"), nil
			},
		},
		{
			Name:        "set_custom_rules",
			Description: "Replace the user-defined custom filtering rules. The supplied rules overwrite the existing set.",
			Category:    tools.CategoryFiltering,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"rules": strListProp("Complete set of custom rules, one rule per entry"),
				},
				Required: []string{"rules"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				rules := strsArg(args, "rules")
				if _, err := c.Post(ctx, "filtering/set_rules", map[string]any{"rules": rules}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Custom rules replaced (%d rules).", len(rules)), nil
			},
		},
	}
}

func writeFilterList(b *strings.Builder, label string, filters []any) {
	if len(filters) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, filter := range filters {
		f := asMap(filter)
		state := "off"
		if boolField(f, "enabled") {
			state = "on"
		}
		fmt.Fprintf(b, "  - %s (%s, %d rules, %s)\n",
			str(f, "name"), state, num(f, "rules_count"), str(f, "url"))
	}
}
