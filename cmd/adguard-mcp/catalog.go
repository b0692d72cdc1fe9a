package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/catalog"
	"github.com/michaelbrown/adguard-mcp/internal/config"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

var catalogAllFlag bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the tool catalog as YAML",
	Long: `Print the tools exposed under the current access policy as YAML.
With --all, print the full catalog and mark which tools the policy blocks.

Requires the same ADGUARD_* environment as serve; only ADGUARD_BASE_URL,
ADGUARD_USERNAME, and ADGUARD_PASSWORD need real values since nothing is
called.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogAllFlag, "all", false, "Include tools blocked by the access policy")
	rootCmd.AddCommand(catalogCmd)
}

// catalogEntry is the YAML view of one descriptor.
type catalogEntry struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Tier        string       `yaml:"tier"`
	Destructive bool         `yaml:"destructive,omitempty"`
	Blocked     string       `yaml:"blocked,omitempty"`
	Parameters  tools.Schema `yaml:"parameters,omitempty"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := adguard.NewClient(cfg.BaseURL, cfg.Username, cfg.Password, time.Second, log.New(io.Discard, "", 0), false)
	allowed := cfg.CategorySet()

	var entries []catalogEntry
	for _, d := range catalog.All(client) {
		blocked := ""
		switch {
		case cfg.Access == tools.TierReadOnly && d.Tier == tools.TierFull:
			blocked = "requires full access"
		case allowed != nil && !allowed[d.Category]:
			blocked = fmt.Sprintf("category %s not enabled", d.Category)
		}
		if blocked != "" && !catalogAllFlag {
			continue
		}
		entries = append(entries, catalogEntry{
			Name:        d.Name,
			Description: d.Description,
			Category:    string(d.Category),
			Tier:        string(d.Tier),
			Destructive: d.Destructive,
			Blocked:     blocked,
			Parameters:  d.Schema,
		})
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(map[string]any{"tools": entries})
}
