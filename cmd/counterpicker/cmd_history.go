package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"CounterPicker/internal/report"
)

var historyFlags struct {
	catalog string
	limit   int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent enrichment runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.catalog, "catalog", "", "only runs of this catalog")
	f.IntVar(&historyFlags.limit, "limit", 20, "maximum runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	runs, err := application.History(cmd.Context(), historyFlags.catalog, historyFlags.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No enrichment runs recorded yet.")
		return nil
	}
	fmt.Fprintln(out, report.History(runs, tableMode()))
	return nil
}
