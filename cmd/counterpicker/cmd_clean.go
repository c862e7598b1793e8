package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop hero catalog entries that are not playable heroes",
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer application.Close()

	before, after, err := application.Clean(cmd.Context())
	if err != nil {
		return fmt.Errorf("clean heroes: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Heroes: %d -> %d (removed %d)\n", before, after, before-after)
	return nil
}
