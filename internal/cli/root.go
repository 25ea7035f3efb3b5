// Package cli provides the command-line interface for the trading pipeline.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bond-trading-pipeline/internal/config"
)

// Version information.
const (
	Version   = "0.1.0"
	BuildDate = "2026-01-01"
)

// App holds the application dependencies shared by every subcommand.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{Config: cfg, Logger: logger}

	rootCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Bond trading back-office pipeline",
		Long: `pipeline replays prices, market data, trades and inquiries through a
service-oriented back-office chain: pricing, algo streaming, market data,
algo execution, execution, trade booking, position, risk and inquiry.

Use 'pipeline run' to drive a batch over input files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to a config.yaml file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			return nil
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		*app.Config = *cfg
		return nil
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version, "build_date": BuildDate})
				return
			}
			output.Printf("bond-trading-pipeline v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
		},
	}
}
