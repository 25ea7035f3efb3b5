package pipeline

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/config"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := config.Default()
	cfg.Files.OutDir = t.TempDir()
	return New(cfg, zerolog.Nop())
}

func TestPipeline_IngestPrices_DrivesStreamingAndGUI(t *testing.T) {
	p := newTestPipeline(t)
	defer p.Close()

	p.IngestPrices(strings.NewReader("T2Y 99-16+ 0-01\n"))

	price, err := p.Pricing.GetData("T2Y")
	require.NoError(t, err)
	require.InDelta(t, 99.515625, price.Mid, 1e-9)

	stream, err := p.AlgoStreaming.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, 1_000_000.0, stream.BidOrder.VisibleQty)

	republished, err := p.Streaming.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, stream.ProductId, republished.ProductId)
}

func TestPipeline_IngestTrades_FlowsToPositionAndRisk(t *testing.T) {
	p := newTestPipeline(t)
	defer p.Close()

	p.IngestPrices(strings.NewReader("T5Y 99-00 0-01\n"))
	p.IngestTrades(strings.NewReader("T5Y,TRADE1,99.0,TRSY1,1000,BUY\nT5Y,TRADE2,99.0,TRSY2,2000,SELL\n"))

	pos, err := p.Position.GetData("T5Y")
	require.NoError(t, err)
	require.Equal(t, -1000.0, pos.Aggregate())

	pv01, err := p.Risk.GetData("T5Y")
	require.NoError(t, err)
	require.Equal(t, -1000.0, pv01.Quantity)
}

func TestPipeline_IngestMarketData_DrivesExecutionAndTrades(t *testing.T) {
	p := newTestPipeline(t)
	defer p.Close()

	row := "T3Y," +
		"100-00,10,99-16,20,99-00,30,98-16,40,98-00,50," +
		"100-001,10,101-00,20,101-16,30,102-00,40,102-16,50\n"
	p.IngestMarketData(strings.NewReader(row))

	order, err := p.AlgoExecution.GetData("T3Y")
	require.NoError(t, err)
	require.Equal(t, "MARKET", string(order.OrderType))

	trade, err := p.TradeBooking.GetData("TRADE_T3Y")
	require.NoError(t, err)
	require.Equal(t, "TRSY1", trade.Book)
}

func TestPipeline_IngestInquiries_RunsStateMachine(t *testing.T) {
	p := newTestPipeline(t)
	defer p.Close()

	p.IngestInquiries(strings.NewReader("INQ1 T2Y BUY 5000\n"))

	inq, err := p.Inquiry.GetData("INQ1")
	require.NoError(t, err)
	require.Equal(t, "DONE", string(inq.State))
	require.Equal(t, 100.0, inq.Price)
}

func TestPipeline_GetBucketedRisk(t *testing.T) {
	p := newTestPipeline(t)
	defer p.Close()

	p.IngestPrices(strings.NewReader("T2Y 99-00 0-01\nT3Y 98-00 0-01\n"))
	p.IngestTrades(strings.NewReader("T2Y,TRADE1,99.0,TRSY1,1000,BUY\nT3Y,TRADE2,98.0,TRSY1,500,BUY\n"))

	pv01, qty, ok := p.GetBucketedRisk("SHORT_END")
	require.True(t, ok)
	require.NotEqual(t, 0.0, pv01)
	require.Equal(t, 1500.0, qty)

	_, _, ok = p.GetBucketedRisk("UNKNOWN_SECTOR")
	require.False(t, ok)
}
