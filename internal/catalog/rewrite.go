package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func rewriteTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "list_rewrites",
			Description: "List all DNS rewrite rules (local domain to address mappings).",
			Category:    tools.CategoryRewrite,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "rewrite/list")
				if err != nil {
					return "", err
				}
				rewrites := asList(v)
				if len(rewrites) == 0 {
					return "No DNS rewrites defined.", nil
				}
				var b strings.Builder
				fmt.Fprintf(&b, "%d rewrites:\n", len(rewrites))
				for _, rewrite := range rewrites {
					rm := asMap(rewrite)
					fmt.Fprintf(&b, "  %s -> %s\n", str(rm, "domain"), str(rm, "answer"))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "add_rewrite",
			Description: "Add a DNS rewrite rule mapping a domain (wildcards allowed) to an IP address or CNAME target.",
			Category:    tools.CategoryRewrite,
			Tier:        tools.TierFull,
			Schema:      rewriteSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "rewrite/add", rewriteBody(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Rewrite added: %s -> %s.", strArg(args, "domain"), strArg(args, "answer")), nil
			},
		},
		{
			Name:        "delete_rewrite",
			Description: "Delete a DNS rewrite rule. Both domain and answer must match the existing rule.",
			Category:    tools.CategoryRewrite,
			Tier:        tools.TierFull,
			Schema:      rewriteSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "rewrite/delete", rewriteBody(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Rewrite deleted: %s.", strArg(args, "domain")), nil
			},
		},
		{
			Name: "update_rewrite",
			Description: "Change the answer of an existing rewrite by deleting the old rule and adding the new one. " +
				"The two steps are not atomic: if the add fails, the old rule is already gone.",
			Category: tools.CategoryRewrite,
			Tier:     tools.TierFull,
			Schema: tools.Schema{
				Properties: map[string]tools.Property{
					"domain":     strProp("Domain of the existing rule"),
					"answer":     strProp("Current answer of the existing rule"),
					"new_answer": strProp("New IP address or CNAME target"),
				},
				Required: []string{"domain", "answer", "new_answer"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "rewrite/delete", rewriteBody(args)); err != nil {
					return "", err
				}
				updated := map[string]any{
					"domain": strArg(args, "domain"),
					"answer": strArg(args, "new_answer"),
				}
				if _, err := c.Post(ctx, "rewrite/add", updated); err != nil {
					return "", fmt.Errorf("old rewrite deleted but adding replacement failed: %w", err)
				}
				return fmt.Sprintf("Rewrite updated: %s -> %s.", strArg(args, "domain"), strArg(args, "new_answer")), nil
			},
		},
	}
}

var rewriteSchema = tools.Schema{
	Properties: map[string]tools.Property{
		"domain": strProp("Domain or wildcard (e.g. *.home.lan)"),
		"answer": strProp("IP address or CNAME target"),
	},
	Required: []string{"domain", "answer"},
}

func rewriteBody(args map[string]any) map[string]any {
	return map[string]any{
		"domain": strArg(args, "domain"),
		"answer": strArg(args, "answer"),
	}
}
