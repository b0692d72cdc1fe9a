package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "adguard-mcp",
	Short: "MCP server for AdGuard Home",
	Long: `adguard-mcp exposes an AdGuard Home instance as MCP tools, so AI agents
can inspect and manage DNS filtering, clients, query logs, and more.

Configuration comes from ADGUARD_* environment variables; at minimum set
ADGUARD_BASE_URL, ADGUARD_USERNAME, and ADGUARD_PASSWORD.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
