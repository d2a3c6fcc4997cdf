package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportsJSON bool

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete reports",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runReportsDelete,
}

func init() {
	reportsCmd.PersistentFlags().BoolVar(&reportsJSON, "json", false, "Output as JSON")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
}

func runReportsList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Stop()

	reports, err := a.Reports()
	if err != nil {
		return err
	}
	if reportsJSON {
		return printJSON(cmd, reports)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReportList(reports))
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Stop()

	r, err := a.Report(args[0])
	if err != nil {
		return err
	}
	if reportsJSON {
		return printJSON(cmd, r)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReport(r))
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Stop()

	for _, id := range args {
		if err := a.DeleteReport(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "⚡ deleted %s\n", id)
	}
	return nil
}
