package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/catalog"
	"github.com/michaelbrown/adguard-mcp/internal/config"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json-args]",
	Short: "Invoke a tool directly, or start an interactive session",
	Long: `Invoke one tool and print its result, going through the same access
gate, validation, and sanitization as MCP clients do. With no arguments,
start an interactive session.

Examples:
  adguard-mcp call get_status
  adguard-mcp call check_host '{"name": "ads.example.com"}'
  adguard-mcp call`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

// collector stands in for the MCP server so the gate-approved tools and
// their wrapped handlers can be driven from the command line.
type collector struct {
	tools    []mcp.Tool
	handlers map[string]mcpserver.ToolHandlerFunc
}

func (c *collector) AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	c.tools = append(c.tools, tool)
	c.handlers[tool.Name] = handler
}

func buildCollector(logger *log.Logger) (*collector, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client := adguard.NewClient(cfg.BaseURL, cfg.Username, cfg.Password, cfg.Timeout, logger, cfg.Debug)

	col := &collector{handlers: make(map[string]mcpserver.ToolHandlerFunc)}
	registry := tools.NewRegistry(col, tools.Options{
		Access:             cfg.Access,
		Categories:         cfg.CategorySet(),
		ConfirmDestructive: cfg.ConfirmDestructive,
		Username:           cfg.Username,
		Password:           cfg.Password,
	}, nil, logger)

	if _, err := registry.RegisterAll(catalog.All(client)); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	return col, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr, "", 0)
	col, err := buildCollector(logger)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return runInteractive(col)
	}

	toolArgs := map[string]any{}
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			return fmt.Errorf("parsing arguments: %w", err)
		}
	}

	text, isErr := invokeTool(col, args[0], toolArgs)
	if isErr {
		return fmt.Errorf("%s", text)
	}
	fmt.Println(text)
	return nil
}

func invokeTool(col *collector, name string, args map[string]any) (text string, isErr bool) {
	handler, ok := col.handlers[name]
	if !ok {
		return fmt.Sprintf("unknown tool %q (it may be blocked by the access policy; try /list)", name), true
	}

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	if err != nil {
		return err.Error(), true
	}

	var b strings.Builder
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n"), res.IsError
}

func runInteractive(col *collector) error {
	fmt.Printf("adguard-mcp interactive session, %d tools available\n", len(col.tools))
	fmt.Printf("Type a tool name, optionally followed by JSON arguments. /help for commands.\n\n")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "adguard> ",
		HistoryFile:     "/tmp/adguard_mcp_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleReplCommand(input, col) {
				continue
			}
		}

		name, rest, _ := strings.Cut(input, " ")
		args := map[string]any{}
		if rest = strings.TrimSpace(rest); rest != "" {
			if err := json.Unmarshal([]byte(rest), &args); err != nil {
				fmt.Printf("error: arguments must be a JSON object: %v\n\n", err)
				continue
			}
		}

		text, isErr := invokeTool(col, name, args)
		if isErr {
			fmt.Printf("error: %s\n\n", text)
			continue
		}
		fmt.Printf("%s\n\n", text)
	}
}

func handleReplCommand(input string, col *collector) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/quit", "/exit", "/q":
		os.Exit(0)
	case "/list", "/tools":
		names := make([]string, 0, len(col.tools))
		byName := make(map[string]mcp.Tool, len(col.tools))
		for _, tool := range col.tools {
			names = append(names, tool.Name)
			byName[tool.Name] = tool
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-28s %s\n", name, byName[name].Description)
		}
		fmt.Println()
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /list   - List available tools")
		fmt.Println("  /help   - Show this help")
		fmt.Println("  /quit   - Exit")
		fmt.Println()
	default:
		fmt.Printf("Unknown command: %s (try /help)\n\n", input)
	}
	return true
}
