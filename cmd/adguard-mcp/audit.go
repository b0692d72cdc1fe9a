package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaelbrown/adguard-mcp/internal/config"
	"github.com/michaelbrown/adguard-mcp/internal/storage"
	"github.com/michaelbrown/adguard-mcp/internal/storage/sqlite"
)

var (
	auditToolFilter     string
	auditCategoryFilter string
	auditFailedOnly     bool
	auditLimitFlag      int
	auditFormat         string
	auditOutput         string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the tool-call audit log",
	Long: `Inspect the audit log written when ADGUARD_AUDIT_DB is set.

Examples:
  adguard-mcp audit list
  adguard-mcp audit list --failed --tool set_dns_config
  adguard-mcp audit export --format json -o calls.json`,
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tool calls",
	RunE:  runAuditList,
}

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded tool calls as markdown or JSON",
	RunE:  runAuditExport,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd, auditExportCmd)

	for _, c := range []*cobra.Command{auditListCmd, auditExportCmd} {
		c.Flags().StringVar(&auditToolFilter, "tool", "", "Filter by tool name")
		c.Flags().StringVar(&auditCategoryFilter, "category", "", "Filter by category")
		c.Flags().BoolVar(&auditFailedOnly, "failed", false, "Only show failed calls")
		c.Flags().IntVar(&auditLimitFlag, "limit", 50, "Max calls to show")
	}

	auditExportCmd.Flags().StringVar(&auditFormat, "format", "md", "Export format: md or json")
	auditExportCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Output file (default: stdout)")
}

func loadAuditCalls(ctx context.Context) ([]storage.CallRecord, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.AuditDB == "" {
		return nil, fmt.Errorf("ADGUARD_AUDIT_DB is not set; no audit log to read")
	}

	store, err := sqlite.Open(cfg.AuditDB)
	if err != nil {
		return nil, fmt.Errorf("opening audit store: %w", err)
	}
	defer store.Close()

	return store.ListCalls(ctx, storage.CallListOptions{
		Tool:       auditToolFilter,
		Category:   auditCategoryFilter,
		FailedOnly: auditFailedOnly,
		Limit:      auditLimitFlag,
	})
}

func runAuditList(cmd *cobra.Command, args []string) error {
	calls, err := loadAuditCalls(cmd.Context())
	if err != nil {
		return err
	}

	if len(calls) == 0 {
		fmt.Println("No recorded calls.")
		return nil
	}

	fmt.Printf("%-20s %-28s %-16s %-4s %s\n", "TIME", "TOOL", "CATEGORY", "OK", "DURATION")
	fmt.Println(strings.Repeat("-", 80))

	for _, c := range calls {
		status := "yes"
		if !c.OK {
			status = "no"
		}
		fmt.Printf("%-20s %-28s %-16s %-4s %s\n",
			c.CreatedAt.Format("2006-01-02 15:04:05"),
			c.Tool, c.Category, status, c.Duration.Round(time.Millisecond))
		if c.Error != "" {
			fmt.Printf("    %s\n", c.Error)
		}
	}

	return nil
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	calls, err := loadAuditCalls(cmd.Context())
	if err != nil {
		return err
	}

	var output string
	switch auditFormat {
	case "json":
		data, err := storage.ExportJSON(calls)
		if err != nil {
			return err
		}
		output = string(data)
	default:
		output = storage.ExportMarkdown(calls)
	}

	if auditOutput != "" {
		return os.WriteFile(auditOutput, []byte(output), 0o644)
	}

	fmt.Print(output)
	return nil
}
