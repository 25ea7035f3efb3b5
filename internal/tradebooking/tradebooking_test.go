package tradebooking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

func TestOnMessage_BooksExternalTrade(t *testing.T) {
	s := New()

	s.OnMessage(models.Trade{TradeId: "TRADE1", ProductId: "T2Y", Price: 99.5, Book: "TRSY1", Quantity: 1000, Side: models.Buy})

	trade, err := s.GetData("TRADE1")
	require.NoError(t, err)
	require.Equal(t, "TRSY1", trade.Book)
	require.Equal(t, models.Buy, trade.Side)
}

func TestProcessAdd_FromExecution_FiresAdd(t *testing.T) {
	s := New()

	var adds, updates, removes int
	s.AddListener(soa.ListenerFuncs[models.Trade]{
		OnAdd:    func(models.Trade) { adds++ },
		OnUpdate: func(models.Trade) { updates++ },
		OnRemove: func(models.Trade) { removes++ },
	})

	trade := models.Trade{TradeId: "TRADE_T3Y", ProductId: "T3Y", Price: 100.0, Book: "TRSY1", Quantity: 500, Side: models.Sell}
	s.ProcessAdd(trade)
	s.ProcessUpdate(trade)
	s.ProcessRemove(trade)

	require.Equal(t, 1, adds)
	require.Equal(t, 1, updates)
	require.Equal(t, 1, removes)

	_, err := s.GetData("TRADE_T3Y")
	require.Error(t, err)
}
