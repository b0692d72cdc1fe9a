package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/catalog"
	"github.com/michaelbrown/adguard-mcp/internal/config"
	"github.com/michaelbrown/adguard-mcp/internal/server"
	"github.com/michaelbrown/adguard-mcp/internal/storage"
	"github.com/michaelbrown/adguard-mcp/internal/storage/sqlite"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

var httpPortFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server on stdio, or over HTTP with server-sent events
when --http is given.

Examples:
  adguard-mcp serve
  adguard-mcp serve --http 8099`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&httpPortFlag, "http", 0, "Serve over HTTP/SSE on this port instead of stdio")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Stdout carries the MCP protocol; all diagnostics go to stderr.
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := adguard.NewClient(cfg.BaseURL, cfg.Username, cfg.Password, cfg.Timeout, logger, cfg.Debug)
	if err := client.ValidateConnection(context.Background()); err != nil {
		return err
	}
	logger.Printf("connected to AdGuard Home at %s", client.BaseURL())

	var audit storage.Store
	if cfg.AuditDB != "" {
		audit, err = sqlite.Open(cfg.AuditDB)
		if err != nil {
			return fmt.Errorf("opening audit store: %w", err)
		}
		defer audit.Close()
		logger.Printf("auditing tool calls to %s", cfg.AuditDB)
	}

	mcp := mcpserver.NewMCPServer("adguard-mcp", version)
	registry := tools.NewRegistry(mcp, tools.Options{
		Access:             cfg.Access,
		Categories:         cfg.CategorySet(),
		ConfirmDestructive: cfg.ConfirmDestructive,
		Username:           cfg.Username,
		Password:           cfg.Password,
	}, audit, logger)

	n, err := registry.RegisterAll(catalog.All(client))
	if err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}
	logger.Printf("registered %d tools (access=%s)", n, cfg.Access)

	if httpPortFlag > 0 {
		srv := server.New(mcpserver.NewSSEServer(mcp), logger)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			srv.Shutdown(context.Background())
		}()

		return srv.Start(httpPortFlag)
	}

	return mcpserver.ServeStdio(mcp)
}
