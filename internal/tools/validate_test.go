package tools_test

import (
	"strings"
	"testing"

	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func TestValidate(t *testing.T) {
	schema := tools.Schema{
		Properties: map[string]tools.Property{
			"name":    {Type: "string"},
			"mode":    {Type: "string", Enum: []string{"default", "strict"}},
			"limit":   {Type: "number"},
			"enabled": {Type: "boolean"},
			"ids":     {Type: "array", Items: &tools.Property{Type: "string"}},
		},
		Required: []string{"name"},
	}

	cases := []struct {
		desc    string
		args    map[string]any
		wantErr string
	}{
		{
			desc: "valid full set",
			args: map[string]any{
				"name":    "example.com",
				"mode":    "strict",
				"limit":   float64(20),
				"enabled": true,
				"ids":     []any{"a", "b"},
			},
		},
		{
			desc: "required only",
			args: map[string]any{"name": "example.com"},
		},
		{
			desc:    "missing required",
			args:    map[string]any{"limit": float64(5)},
			wantErr: "name",
		},
		{
			desc:    "unknown parameter",
			args:    map[string]any{"name": "x", "bogus": 1},
			wantErr: "bogus",
		},
		{
			desc:    "wrong type",
			args:    map[string]any{"name": 42},
			wantErr: "name",
		},
		{
			desc:    "enum violation",
			args:    map[string]any{"name": "x", "mode": "turbo"},
			wantErr: "mode",
		},
		{
			desc:    "array element type",
			args:    map[string]any{"name": "x", "ids": []any{"a", 3}},
			wantErr: "ids",
		},
		{
			desc: "integer as int",
			args: map[string]any{"name": "x", "limit": 20},
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tools.Validate(schema, tc.args)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %q, should mention %q", err, tc.wantErr)
			}
		})
	}
}
