package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/app"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List symptom categories",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Output as JSON")
}

func runCategories(cmd *cobra.Command, args []string) error {
	c, err := app.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	if categoriesJSON {
		return printJSON(cmd, c.Categories())
	}
	fmt.Fprint(cmd.OutOrStdout(), formatCategories(c))
	return nil
}
