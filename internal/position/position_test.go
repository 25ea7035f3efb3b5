package position

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/models"
)

func TestApply_S5_TradeToPosition(t *testing.T) {
	s := New()

	s.ProcessAdd(models.Trade{TradeId: "T1", ProductId: "T5Y", Book: "TRSY1", Quantity: 1000, Side: models.Buy})
	s.ProcessAdd(models.Trade{TradeId: "T2", ProductId: "T5Y", Book: "TRSY2", Quantity: 2000, Side: models.Sell})

	pos, err := s.GetData("T5Y")
	require.NoError(t, err)
	require.Equal(t, 1000.0, pos.Books["TRSY1"])
	require.Equal(t, -2000.0, pos.Books["TRSY2"])
	require.Equal(t, -1000.0, pos.Aggregate())
}

func TestApply_Invariant5_PositionConservation(t *testing.T) {
	s := New()
	trades := []models.Trade{
		{TradeId: "T1", ProductId: "T2Y", Book: "TRSY1", Quantity: 500, Side: models.Buy},
		{TradeId: "T2", ProductId: "T2Y", Book: "TRSY1", Quantity: 300, Side: models.Sell},
		{TradeId: "T3", ProductId: "T2Y", Book: "TRSY2", Quantity: 100, Side: models.Buy},
	}
	var expected float64
	for _, tr := range trades {
		s.ProcessAdd(tr)
		if tr.Side == models.Buy {
			expected += tr.Quantity
		} else {
			expected -= tr.Quantity
		}
	}

	pos, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, expected, pos.Aggregate())
}

func TestGetData_ReturnsClone(t *testing.T) {
	s := New()
	s.ProcessAdd(models.Trade{TradeId: "T1", ProductId: "T2Y", Book: "TRSY1", Quantity: 100, Side: models.Buy})

	pos, err := s.GetData("T2Y")
	require.NoError(t, err)
	pos.Books["TRSY1"] = 999999

	fresh, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, 100.0, fresh.Books["TRSY1"])
}

func TestProcessRemove_ReversesTrade(t *testing.T) {
	s := New()
	trade := models.Trade{TradeId: "T1", ProductId: "T2Y", Book: "TRSY1", Quantity: 500, Side: models.Buy}
	s.ProcessAdd(trade)
	s.ProcessRemove(trade)

	pos, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, 0.0, pos.Aggregate())
}
