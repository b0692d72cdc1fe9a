package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/storage"
)

// Options is the policy under which tools are exposed. It is derived from
// the loaded configuration and never changes after startup.
type Options struct {
	Access Tier
	// Categories is the allowlist; nil means unrestricted.
	Categories map[Category]bool
	// ConfirmDestructive requires destructive tools to be called with
	// confirm=true before they act.
	ConfirmDestructive bool
	// Username and Password are the sanitization context for handler
	// failures crossing the tool-call boundary.
	Username string
	Password string
}

// ToolAdder is the part of the MCP server the registry needs. Satisfied by
// *server.MCPServer.
type ToolAdder interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}

// Registry decides which catalog descriptors are exposed to the calling
// agent and wraps their handlers so failures become error-flagged results
// instead of propagating.
type Registry struct {
	adder  ToolAdder
	opts   Options
	audit  storage.Store // optional; nil disables the audit trail
	logger *log.Logger
	names  map[string]bool
}

// NewRegistry creates a registry that registers surviving tools with adder.
func NewRegistry(adder ToolAdder, opts Options, audit storage.Store, logger *log.Logger) *Registry {
	return &Registry{
		adder:  adder,
		opts:   opts,
		audit:  audit,
		logger: logger,
		names:  make(map[string]bool),
	}
}

// RegisterAll runs every descriptor through the gate and returns how many
// were exposed. A duplicate tool name is a programmer error and fails
// registration outright; callers treat it as fatal at startup.
func (r *Registry) RegisterAll(catalog []Descriptor) (int, error) {
	registered := 0
	for _, d := range catalog {
		if r.names[d.Name] {
			return registered, fmt.Errorf("duplicate tool name: %s", d.Name)
		}
		r.names[d.Name] = true
		if r.TryRegister(d) {
			registered++
		}
	}
	return registered, nil
}

// TryRegister evaluates the tier gate then the category gate and, when both
// pass, hands the descriptor to the MCP server with a wrapped handler.
// Returns whether the tool was registered.
func (r *Registry) TryRegister(d Descriptor) bool {
	if r.opts.Access == TierReadOnly && d.Tier == TierFull {
		r.logger.Printf("tools: skipping %s (requires full access)", d.Name)
		return false
	}
	if r.opts.Categories != nil && !r.opts.Categories[d.Category] {
		r.logger.Printf("tools: skipping %s (category %s not enabled)", d.Name, d.Category)
		return false
	}

	r.adder.AddTool(mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: r.inputSchema(d),
		Annotations: mcp.ToolAnnotation{
			Title:           d.Name,
			ReadOnlyHint:    boolPtr(d.Tier == TierReadOnly),
			DestructiveHint: boolPtr(d.Destructive),
		},
	}, r.wrap(d))
	return true
}

// inputSchema converts a descriptor's declarative schema into the MCP wire
// form, appending the confirm parameter for destructive tools so callers
// can see it.
func (r *Registry) inputSchema(d Descriptor) mcp.ToolInputSchema {
	props := make(map[string]any, len(d.Schema.Properties)+1)
	for name, p := range d.Schema.Properties {
		props[name] = propertyMap(p)
	}
	if d.Destructive && r.opts.ConfirmDestructive {
		props["confirm"] = map[string]any{
			"type":        "boolean",
			"description": "Set to true to confirm this destructive operation",
		}
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   d.Schema.Required,
	}
}

func propertyMap(p Property) map[string]any {
	m := map[string]any{"type": p.Type}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		m["enum"] = p.Enum
	}
	if p.Items != nil {
		m["items"] = propertyMap(*p.Items)
	}
	return m
}

// wrap turns a descriptor's handler into an MCP handler: validate the
// arguments, enforce destructive confirmation, run the handler, and convert
// any failure into a sanitized error-flagged result. The raw error never
// crosses the tool-call boundary.
func (r *Registry) wrap(d Descriptor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)
		if args == nil {
			args = map[string]any{}
		}

		start := time.Now()
		text, err := r.invoke(ctx, d, args)
		r.record(ctx, d, args, err, time.Since(start))

		if err != nil {
			return errResult(adguard.Sanitize(err.Error(), r.opts.Username, r.opts.Password)), nil
		}
		return textResult(text), nil
	}
}

func (r *Registry) invoke(ctx context.Context, d Descriptor, args map[string]any) (string, error) {
	schema := d.Schema
	if d.Destructive {
		// Destructive tools always accept confirm, even when confirmation
		// is not being enforced.
		schema = withConfirm(schema)
	}
	if d.Destructive && r.opts.ConfirmDestructive {
		if confirmed, _ := args["confirm"].(bool); !confirmed {
			return fmt.Sprintf("%s is a destructive operation and ADGUARD_CONFIRM_DESTRUCTIVE is enabled. "+
				"Call it again with \"confirm\": true to proceed.", d.Name), nil
		}
	}
	if err := Validate(schema, args); err != nil {
		return "", err
	}
	return d.Handler(ctx, args)
}

// withConfirm returns a copy of s that also accepts the confirm parameter.
func withConfirm(s Schema) Schema {
	props := make(map[string]Property, len(s.Properties)+1)
	for name, p := range s.Properties {
		props[name] = p
	}
	props["confirm"] = Property{Type: "boolean", Description: "Confirms a destructive operation"}
	return Schema{Properties: props, Required: s.Required}
}

func (r *Registry) record(ctx context.Context, d Descriptor, args map[string]any, callErr error, elapsed time.Duration) {
	if r.audit == nil {
		return
	}
	argsJSON, _ := json.Marshal(args)
	rec := &storage.CallRecord{
		ID:       uuid.New().String(),
		Tool:     d.Name,
		Category: string(d.Category),
		Args:     string(argsJSON),
		OK:       callErr == nil,
		Duration: elapsed,
	}
	if callErr != nil {
		rec.Error = adguard.Sanitize(callErr.Error(), r.opts.Username, r.opts.Password)
	}
	if err := r.audit.RecordCall(ctx, rec); err != nil {
		r.logger.Printf("tools: recording audit entry for %s: %v", d.Name, err)
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
	}
}

func errResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: text}},
		IsError: true,
	}
}

func boolPtr(b bool) *bool { return &b }
