package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/app"
	"github.com/corey/medreport/internal/domain/catalog"
	"github.com/corey/medreport/internal/domain/query"
	"github.com/corey/medreport/internal/domain/selection"
)

var (
	searchCategories []string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search symptoms by name or synonym",
	Long: "Scores every symptom against the query (exact, prefix, substring, then typo-tolerant)\n" +
		"and prints matching symptoms grouped by category. With no query, lists everything.",
	Example: "  medreport search tummy ache\n  medreport search fevr -c General -c Respiratory",
	RunE:    runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringArrayVarP(&searchCategories, "category", "c", nil, "Restrict to a category (repeatable; \"all\" for every category)")
	f.BoolVar(&searchJSON, "json", false, "Output as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := app.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	for _, id := range searchCategories {
		if id != catalog.All && !c.HasCategory(id) {
			return fmt.Errorf("%w: %q (see: medreport categories)", query.ErrUnknownCategory, id)
		}
	}

	q := strings.Join(args, " ")
	groups := query.FilterAndRank(c, q, selection.NewActiveCategories(searchCategories...))
	if searchJSON {
		return printJSON(cmd, groups)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatGroups(q, groups))
	return nil
}
