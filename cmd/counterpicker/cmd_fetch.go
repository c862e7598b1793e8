package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Rebuild hero and item catalogs from wiki categories",
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, _ []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	heroes, items, err := application.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch catalogs: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d heroes and %d items\n", heroes, items)
	return nil
}
