package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/app"
)

var synonymsCmd = &cobra.Command{
	Use:   "synonyms <symptom>",
	Short: "Show the lay phrases registered for a symptom",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSynonyms,
}

func runSynonyms(cmd *cobra.Command, args []string) error {
	c, err := app.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	name := strings.Join(args, " ")
	if !c.HasSymptom(name) {
		return fmt.Errorf("unknown symptom %q (names are case-sensitive; try: medreport search %s)", name, name)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", paint(colorBold, "⚡ "+name), paint(colorGray, "("+strings.Join(c.CategoriesOf(name), ", ")+")"))
	syns := c.Synonyms(name)
	if len(syns) == 0 {
		fmt.Fprintln(out, "  no synonyms")
		return nil
	}
	for _, s := range syns {
		fmt.Fprintf(out, "  %s\n", s)
	}
	return nil
}
