// Package pipeline wires the trading services and historical sinks into
// their dependency-ordered chain, and exposes the four ingestion entry
// points that drive it end to end.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bond-trading-pipeline/internal/algoexecution"
	"bond-trading-pipeline/internal/algostreaming"
	"bond-trading-pipeline/internal/catalog"
	"bond-trading-pipeline/internal/config"
	"bond-trading-pipeline/internal/errors"
	"bond-trading-pipeline/internal/execution"
	"bond-trading-pipeline/internal/gui"
	"bond-trading-pipeline/internal/historical"
	"bond-trading-pipeline/internal/ingest"
	"bond-trading-pipeline/internal/inquiry"
	"bond-trading-pipeline/internal/logging"
	"bond-trading-pipeline/internal/marketdata"
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/position"
	"bond-trading-pipeline/internal/pricing"
	"bond-trading-pipeline/internal/resilience"
	"bond-trading-pipeline/internal/risk"
	"bond-trading-pipeline/internal/streaming"
	"bond-trading-pipeline/internal/tradebooking"
	"bond-trading-pipeline/pkg/utils"
)

func sectorModel(s config.SectorConfig) models.BucketedSector {
	return models.BucketedSector{Name: s.Name, Products: s.Products}
}

// Pipeline holds every wired service, in the dependency order they were
// constructed: ProductCatalog -> Pricing -> AlgoStreaming -> Streaming,
// and MarketData -> AlgoExecution -> Execution -> TradeBooking ->
// Position -> Risk, with Inquiry standing alone.
type Pipeline struct {
	Catalog       *catalog.ProductCatalog
	Pricing       *pricing.Service
	AlgoStreaming *algostreaming.Service
	Streaming     *streaming.Service
	MarketData    *marketdata.Service
	AlgoExecution *algoexecution.Service
	Execution     *execution.Service
	TradeBooking  *tradebooking.Service
	Position      *position.Service
	Risk          *risk.Service
	Inquiry       *inquiry.Service

	RunId string

	sinks   []io.Closer
	logger  zerolog.Logger
	sectors []config.SectorConfig
}

// New wires a full Pipeline from cfg, opening the six output sinks under
// cfg.Files.OutDir. Any sink that cannot be opened is logged and disabled;
// the pipeline continues without it.
func New(cfg *config.Config, logger zerolog.Logger) *Pipeline {
	runId := uuid.NewString()
	logger = logging.WithRun(logger, runId)
	logger.Info().Msg("pipeline starting")

	pricingSvc := pricing.New()
	catalogSvc := catalog.NewProductCatalog()

	p := &Pipeline{
		Catalog:       catalogSvc,
		Pricing:       pricingSvc,
		AlgoStreaming: algostreaming.New(),
		Streaming:     streaming.New(),
		MarketData:    marketdata.New(),
		AlgoExecution: algoexecution.New(logger),
		Execution:     execution.New(logger, cfg.Routing.Markets, cfg.Routing.Books),
		TradeBooking:  tradebooking.New(),
		Position:      position.New(),
		Risk:          risk.New(pricingSvc, catalogSvc),
		Inquiry:       inquiry.New(),
		RunId:         runId,
		logger:        logger,
		sectors:       cfg.Sectors,
	}

	// Pricing -> AlgoStreaming -> Streaming.
	p.Pricing.AddListener(p.AlgoStreaming)
	p.AlgoStreaming.AddListener(p.Streaming)

	// MarketData -> AlgoExecution -> Execution -> TradeBooking -> Position -> Risk.
	p.MarketData.AddListener(p.AlgoExecution)
	p.AlgoExecution.AddListener(p.Execution)
	p.Execution.AddListener(p.TradeBooking)
	p.TradeBooking.AddListener(p.Position)
	p.Position.AddListener(p.Risk)

	p.wireSinks(cfg)
	return p
}

// openSink opens path for append, retrying transient failures (e.g. the
// output directory not yet being visible to this process) with backoff.
// A sink that still can't be opened is disabled: it logs and falls back
// to io.Discard so the rest of the pipeline runs uninterrupted.
func (p *Pipeline) openSink(path string) io.Writer {
	f, err := utils.RetryWithResult(context.Background(), utils.SinkOpenRetryConfig(), func() (*os.File, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	})
	if err != nil {
		p.logger.Error().Err(&errors.IOFailureError{Path: path, Err: err}).Msg("disabling sink")
		return io.Discard
	}
	p.sinks = append(p.sinks, f)

	cb := resilience.NewCircuitBreaker(path, resilience.SinkBreakerConfig())
	return &guardedSink{path: path, out: f, breaker: cb, logger: p.logger}
}

// guardedSink trips its circuit breaker after repeated write failures (a
// full disk, a removed mount) and falls silent rather than retrying every
// event, matching fmt.Fprintf's existing fire-and-forget error handling in
// the historical sinks.
type guardedSink struct {
	path    string
	out     io.Writer
	breaker *resilience.CircuitBreaker
	logger  zerolog.Logger
}

func (g *guardedSink) Write(b []byte) (int, error) {
	err := g.breaker.Execute(context.Background(), func() error {
		_, err := g.out.Write(b)
		return err
	})
	if err != nil && g.breaker.State() != resilience.CircuitOpen {
		g.logger.Error().Err(err).Str("path", g.path).Msg("sink write failed")
	}
	return len(b), nil
}

func (p *Pipeline) wireSinks(cfg *config.Config) {
	positionsOut := p.openSink(cfg.Files.OutDir + "/positions.txt")
	riskOut := p.openSink(cfg.Files.OutDir + "/risk.txt")
	streamingOut := p.openSink(cfg.Files.OutDir + "/streaming.txt")
	inquiriesOut := p.openSink(cfg.Files.OutDir + "/allinquiries.txt")
	executionsOut := p.openSink(cfg.Files.OutDir + "/executions.txt")
	guiOut := p.openSink(cfg.Files.OutDir + "/gui.txt")

	for _, w := range []io.Writer{positionsOut, riskOut, streamingOut, inquiriesOut, executionsOut, guiOut} {
		fmt.Fprintf(w, "--- run %s ---\n", p.RunId)
	}

	p.Position.AddListener(historical.NewPositionSink(positionsOut))
	p.Risk.AddListener(historical.NewPV01Sink(riskOut))
	p.Streaming.AddListener(historical.NewPriceStreamSink(streamingOut))
	p.Inquiry.AddListener(historical.NewInquirySink(inquiriesOut))
	p.TradeBooking.AddListener(historical.NewTradeSink(executionsOut))

	var console io.Writer
	if cfg.Logging.Console {
		console = os.Stdout
	}
	guiThrottle := gui.New(guiOut, console, cfg.GUI.MaxPrints, time.Duration(cfg.GUI.MinIntervalMs)*time.Millisecond)
	p.Pricing.AddListener(guiThrottle)
}

// Close releases every opened sink file handle.
func (p *Pipeline) Close() {
	for _, c := range p.sinks {
		c.Close()
	}
}

// IngestPrices reads and replays r through PricingService.
func (p *Pipeline) IngestPrices(r io.Reader) {
	for _, price := range ingest.ReadPrices(r, p.Catalog, p.logger) {
		p.Pricing.OnMessage(price)
	}
}

// IngestMarketData reads and replays r through MarketDataService.
func (p *Pipeline) IngestMarketData(r io.Reader) {
	for _, book := range ingest.ReadMarketData(r, p.Catalog, p.logger) {
		p.MarketData.OnMessage(book)
	}
}

// IngestTrades reads and replays r through TradeBookingService.
func (p *Pipeline) IngestTrades(r io.Reader) {
	for _, trade := range ingest.ReadTrades(r, p.Catalog, p.logger) {
		p.TradeBooking.OnMessage(trade)
	}
}

// IngestInquiries reads and replays r through InquiryService.
func (p *Pipeline) IngestInquiries(r io.Reader) {
	for _, inq := range ingest.ReadInquiries(r, p.Catalog, p.logger) {
		p.Inquiry.OnMessage(inq)
	}
}

// GetBucketedRisk looks up the configured sector by name and computes its
// roll-up, returning false if no sector with that name was configured.
func (p *Pipeline) GetBucketedRisk(name string) (float64, float64, bool) {
	for _, sector := range p.sectors {
		if sector.Name == name {
			pv01 := p.Risk.GetBucketedRisk(sectorModel(sector))
			return pv01.Pv01, pv01.Quantity, true
		}
	}
	return 0, 0, false
}
