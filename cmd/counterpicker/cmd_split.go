package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Move removed items into a separate catalog file",
	RunE:  runSplit,
}

func runSplit(cmd *cobra.Command, _ []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	kept, removed, err := application.Split(cmd.Context())
	if err != nil {
		return fmt.Errorf("split items: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Kept %d items, moved %d to %s\n", kept, removed, application.Config().Data.RemovedItemsPath)
	return nil
}
