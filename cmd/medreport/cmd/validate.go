package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/app"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check a taxonomy directory",
	Long: "Loads categories.json and synonyms.json from dir (default: the configured taxonomy)\n" +
		"and reports duplicate or blank names and the reserved id \"all\". With --strict,\n" +
		"synonyms for unknown symptoms are an error.",
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat orphan synonyms as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	vc := *cfg
	if len(args) == 1 {
		vc.TaxonomyDir = args[0]
	}
	vc.StrictTaxonomy = vc.StrictTaxonomy || validateStrict

	c, err := app.LoadCatalog(&vc)
	if err != nil {
		return err
	}

	source := "(embedded)"
	if vc.TaxonomyDir != "" {
		source = vc.TaxonomyDir
	}
	fmt.Fprint(cmd.OutOrStdout(), formatStats(source, c.Stats(), c.Orphans()))
	return nil
}
