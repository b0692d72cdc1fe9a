package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func queryLogTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_query_log",
			Description: "Get recent DNS queries from the query log, optionally filtered by search text or response status.",
			Category:    tools.CategoryQueryLog,
			Tier:        tools.TierReadOnly,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"limit":           numProp("Maximum entries to return (default 20)"),
					"offset":          numProp("Entries to skip"),
					"search":          strProp("Filter by domain or client substring"),
					"response_status": {Type: "string", Description: "Filter by how the query was answered", Enum: []string{"all", "filtered", "blocked", "processed", "whitelisted", "rewritten", "safe_search", "parental"}},
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				path := query("querylog", map[string]string{
					"limit":           strconv.Itoa(intArg(args, "limit", 20)),
					"offset":          strconv.Itoa(intArg(args, "offset", 0)),
					"search":          strArg(args, "search"),
					"response_status": strArg(args, "response_status"),
				})
				v, err := c.Get(ctx, path)
				if err != nil {
					return "", err
				}
				entries := asList(asMap(v)["data"])
				if len(entries) == 0 {
					return "No matching query log entries.", nil
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%d entries:\n", len(entries))
				for _, entry := range entries {
					e := asMap(entry)
					q := asMap(e["question"])
					line := fmt.Sprintf("%s  %s %s from %s",
						str(e, "time"), str(q, "type"), str(q, "name"), str(e, "client"))
					if reason := str(e, "reason"); reason != "" && reason != "NotFilteredNotFound" {
						line += " [" + reason + "]"
					}
					b.WriteString(line + "\n")
				}
				return b.String(), nil
			},
		},
		{
			Name:        "get_query_log_config",
			Description: "Get query log settings: whether logging is enabled, retention interval, and client anonymization.",
			Category:    tools.CategoryQueryLog,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "querylog_info")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				return fmt.Sprintf("Query log: %s\nRetention: %d hours\nAnonymize client IPs: %v\n",
					onOff(boolField(m, "enabled")), num(m, "interval"), boolField(m, "anonymize_client_ip")), nil
			},
		},
		{
			Name:        "set_query_log_config",
			Description: "Update query log settings: enable/disable logging, retention interval in hours, client IP anonymization.",
			Category:    tools.CategoryQueryLog,
			Tier:        tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"enabled":             boolProp("Whether queries are logged"),
					"interval":            numProp("Retention interval in hours"),
					"anonymize_client_ip": boolProp("Mask client IPs in the log"),
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if len(args) == 0 {
					return "", fmt.Errorf("no query log settings supplied")
				}
				body := map[string]any{}
				setIf(body, args, "enabled", "interval", "anonymize_client_ip")
				if _, err := c.Post(ctx, "querylog_config", body); err != nil {
					return "", err
				}
				return "Query log configuration updated.", nil
			},
		},
		{
			Name:        "clear_query_log",
			Description: "Delete the entire query log. This cannot be undone.",
			Category:    tools.CategoryQueryLog,
			Tier:        tools.TierFull,
			Destructive: true,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "querylog_clear", nil); err != nil {
					return "", err
				}
				return "Query log cleared.", nil
			},
		},
	}
}
