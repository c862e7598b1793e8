package main

import (
	"os"

	"github.com/spf13/cobra"

	"CounterPicker/internal/app"
	"CounterPicker/internal/config"
	"CounterPicker/internal/logging"
	"CounterPicker/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	markdown   bool
}

var rootCmd = &cobra.Command{
	Use:           "counterpicker",
	Short:         "Hero catalog enrichment and counter-pick recommendations",
	Long:          "CounterPicker refreshes hero and item catalogs from the wiki, tags each entry\nwith its lifecycle status and ranks counter picks against an enemy team.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "YAML config path (overrides $COUNTERPICKER_CONFIG)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&rootFlags.markdown, "markdown", false, "render tables as Markdown")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version
}

func loadConfig() config.Config {
	if rootFlags.configPath != "" {
		_ = os.Setenv("COUNTERPICKER_CONFIG", rootFlags.configPath)
	}
	cfg := config.Load()
	if rootFlags.logLevel != "" {
		cfg.Logging.Level = rootFlags.logLevel
	}
	return cfg
}

// newApp builds the application; callers must Close it.
func newApp(cmd *cobra.Command) (*app.Application, error) {
	return newAppWithConfig(cmd, loadConfig())
}

func newAppWithConfig(cmd *cobra.Command, cfg config.Config) (*app.Application, error) {
	return app.New(cmd.Context(), cfg, logging.New(cfg.Logging.Level))
}

func tableMode() report.Mode {
	if rootFlags.markdown {
		return report.Markdown
	}
	return report.ASCII
}
