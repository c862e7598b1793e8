package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"CounterPicker/internal/report"
)

var enrichFlags struct {
	catalogs []string
	every    time.Duration
	poolSize int
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Refresh lifecycle status of every catalog entry from wiki categories",
	RunE:  runEnrich,
}

func init() {
	f := enrichCmd.Flags()
	f.StringSliceVar(&enrichFlags.catalogs, "catalog", nil, "catalog name to enrich (repeatable; default all)")
	f.DurationVar(&enrichFlags.every, "every", 0, "re-run on this interval until interrupted")
	f.IntVar(&enrichFlags.poolSize, "pool", 0, "concurrent lookups (overrides config)")
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if enrichFlags.poolSize > 0 {
		cfg.Enrichment.PoolSize = enrichFlags.poolSize
	}

	application, err := newAppWithConfig(cmd, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if enrichFlags.every > 0 {
		return application.EnrichEvery(cmd.Context(), enrichFlags.catalogs, enrichFlags.every)
	}

	reports, err := application.Enrich(cmd.Context(), enrichFlags.catalogs)
	out := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprintln(out, report.Run(r, tableMode()))
	}
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}
	return nil
}
