package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bond-trading-pipeline/internal/config"
	"bond-trading-pipeline/internal/pipeline"
)

func newRunCmd(app *App) *cobra.Command {
	var pricesPath, marketDataPath, tradesPath, inquiriesPath, outDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay input files through the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			logger := app.Logger
			if debug {
				logger = logger.Level(zerolog.DebugLevel)
			}

			cfg := *app.Config
			// Input flags left unset follow the config as reloaded by --config.
			if !cmd.Flags().Changed("prices") {
				pricesPath = cfg.Files.Prices
			}
			if !cmd.Flags().Changed("market-data") {
				marketDataPath = cfg.Files.MarketData
			}
			if !cmd.Flags().Changed("trades") {
				tradesPath = cfg.Files.Trades
			}
			if !cmd.Flags().Changed("inquiries") {
				inquiriesPath = cfg.Files.Inquiries
			}
			if outDir != "" {
				cfg.Files.OutDir = outDir
			}
			if err := os.MkdirAll(cfg.Files.OutDir, 0755); err != nil {
				return fmt.Errorf("creating out-dir %s: %w", cfg.Files.OutDir, err)
			}

			p := pipeline.New(&cfg, logger)
			defer p.Close()

			if pricesPath != "" {
				if err := withFile(pricesPath, p.IngestPrices); err != nil {
					logger.Error().Err(err).Str("path", pricesPath).Msg("skipping prices file")
				}
			}
			if marketDataPath != "" {
				if err := withFile(marketDataPath, p.IngestMarketData); err != nil {
					logger.Error().Err(err).Str("path", marketDataPath).Msg("skipping market data file")
				}
			}
			if tradesPath != "" {
				if err := withFile(tradesPath, p.IngestTrades); err != nil {
					logger.Error().Err(err).Str("path", tradesPath).Msg("skipping trades file")
				}
			}
			if inquiriesPath != "" {
				if err := withFile(inquiriesPath, p.IngestInquiries); err != nil {
					logger.Error().Err(err).Str("path", inquiriesPath).Msg("skipping inquiries file")
				}
			}

			printSummary(cmd, cfg, p)
			return nil
		},
	}

	cmd.Flags().StringVar(&pricesPath, "prices", app.Config.Files.Prices, "path to the prices input file")
	cmd.Flags().StringVar(&marketDataPath, "market-data", app.Config.Files.MarketData, "path to the market-data input file")
	cmd.Flags().StringVar(&tradesPath, "trades", app.Config.Files.Trades, "path to the trades input file")
	cmd.Flags().StringVar(&inquiriesPath, "inquiries", app.Config.Files.Inquiries, "path to the inquiries input file")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for output sink files (default from config)")

	return cmd
}

func withFile(path string, ingest func(r io.Reader)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ingest(f)
	return nil
}

func printSummary(cmd *cobra.Command, cfg config.Config, p *pipeline.Pipeline) {
	output := NewOutput(cmd)

	table := NewTable(output, "Sector", "PV01", "Quantity")
	for _, sector := range cfg.Sectors {
		pv01, qty, ok := p.GetBucketedRisk(sector.Name)
		if !ok {
			continue
		}
		table.AddRow(sector.Name, fmt.Sprintf("%.4f", pv01), fmt.Sprintf("%.0f", qty))
	}
	table.Render()
}
