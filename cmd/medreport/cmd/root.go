package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/config"
	"github.com/corey/medreport/internal/observability"
)

var (
	configFile  string
	noColorFlag bool

	// cfg is loaded once per invocation before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "medreport",
	Short: "medreport — symptom search and offline health reports",
	Long:  "Search a symptom taxonomy, pick symptoms by body system, and generate structured reports stored on this machine.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = c
		observability.InitLogger("medreport", cfg.Env, cfg.LogLevel)
		useColor = resolveColor(noColorFlag)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")
	pf.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(synonymsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
