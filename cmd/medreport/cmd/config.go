package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved settings, data paths and server status. No server required.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	p := app.NewPaths(cfg.DataDir, cfg.DBPath)

	server := paint(colorYellow, "✗ not running")
	addr := serverAddr(p)
	if addr != "" {
		server = paint(colorGreen, "✓ running at http://"+addr)
	}
	taxonomy := "(embedded)"
	if cfg.TaxonomyDir != "" {
		taxonomy = cfg.TaxonomyDir
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, paint(colorBold, "⚡ medreport config"))
	fmt.Fprintf(out, "  Env:         %s\n", cfg.Env)
	fmt.Fprintf(out, "  Log level:   %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  Data dir:    %s\n", p.Root)
	fmt.Fprintf(out, "  DB:          %s\n", p.DB)
	fmt.Fprintf(out, "  Taxonomy:    %s (strict: %t)\n", taxonomy, cfg.StrictTaxonomy)
	fmt.Fprintf(out, "  Listen:      %s\n", cfg.HTTPAddr)
	fmt.Fprintf(out, "  Retries:     %d (backoff %s)\n", cfg.ProviderMaxRetries, cfg.ProviderBackoff)
	fmt.Fprintf(out, "  Max upload:  %d bytes\n", cfg.MaxUploadBytes)
	fmt.Fprintf(out, "  Server:      %s\n", server)
	return nil
}
