package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

// Argument accessors. The validator has already checked types, so these
// only normalize (JSON numbers arrive as float64).

func strArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) (bool, bool) {
	b, ok := args[key].(bool)
	return b, ok
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func strsArg(args map[string]any, key string) []string {
	items, _ := args[key].([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Response accessors. Payload shapes come from a remote appliance we do not
// control, so every lookup is tolerant of missing fields.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) int64 {
	f, _ := m[key].(float64)
	return int64(f)
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func strs(m map[string]any, key string) []string {
	items := asList(m[key])
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

// jsonBlock pretty-prints a payload for tools whose output is best shown
// as-is rather than summarized field by field.
func jsonBlock(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// query builds "path?k=v" from non-empty parameters.
func query(path string, params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

// setIf copies provided arguments into a request body under new names,
// keeping absent parameters absent so the appliance's current values stand.
func setIf(body map[string]any, args map[string]any, keys ...string) {
	for _, key := range keys {
		if v, ok := args[key]; ok {
			body[key] = v
		}
	}
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

// Schema shorthands used across the catalog.

func strProp(desc string) tools.Property {
	return tools.Property{Type: "string", Description: desc}
}

func boolProp(desc string) tools.Property {
	return tools.Property{Type: "boolean", Description: desc}
}

func numProp(desc string) tools.Property {
	return tools.Property{Type: "number", Description: desc}
}

func strListProp(desc string) tools.Property {
	return tools.Property{
		Type:        "array",
		Description: desc,
		Items:       &tools.Property{Type: "string"},
	}
}
