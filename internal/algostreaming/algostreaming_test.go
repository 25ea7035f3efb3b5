package algostreaming

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/models"
)

func TestStream_S1_PriceToStream(t *testing.T) {
	s := New()
	s.ProcessAdd(models.Price{ProductId: "T2Y", Mid: 99.515625, Spread: 1.0 / 256})

	stream, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.InDelta(t, 99.513671875, stream.BidOrder.Price, 1e-9)
	require.InDelta(t, 99.517578125, stream.OfferOrder.Price, 1e-9)
	require.Equal(t, lowVisible, stream.BidOrder.VisibleQty)
	require.Equal(t, 2*lowVisible, stream.BidOrder.HiddenQty)
	require.Equal(t, lowVisible, stream.OfferOrder.VisibleQty)
	require.Equal(t, 2*lowVisible, stream.OfferOrder.HiddenQty)
}

func TestStream_S2_ToggleSize(t *testing.T) {
	s := New()
	price := models.Price{ProductId: "T2Y", Mid: 100, Spread: 0.1}

	s.ProcessAdd(price)
	first, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, lowVisible, first.BidOrder.VisibleQty)

	s.ProcessUpdate(price)
	second, err := s.GetData("T2Y")
	require.NoError(t, err)
	require.Equal(t, highVisible, second.BidOrder.VisibleQty)
}

func TestStream_Invariant_PriceSymmetry(t *testing.T) {
	s := New()
	mid := 101.25
	s.ProcessAdd(models.Price{ProductId: "T5Y", Mid: mid, Spread: 0.5})

	stream, err := s.GetData("T5Y")
	require.NoError(t, err)
	require.InDelta(t, 2*mid, stream.BidOrder.Price+stream.OfferOrder.Price, 1e-9)
}

func TestStream_Invariant_ToggleSequenceAndHiddenRatio(t *testing.T) {
	s := New()
	price := models.Price{ProductId: "T3Y", Mid: 100, Spread: 0.2}

	wantVisible := []float64{lowVisible, highVisible, lowVisible, highVisible}
	for i, want := range wantVisible {
		if i == 0 {
			s.ProcessAdd(price)
		} else {
			s.ProcessUpdate(price)
		}
		stream, err := s.GetData("T3Y")
		require.NoError(t, err)
		require.Equal(t, want, stream.BidOrder.VisibleQty)
		require.Equal(t, math.Abs(2*stream.BidOrder.VisibleQty-stream.BidOrder.HiddenQty) < 1e-9, true)
	}
}

func TestStream_ProcessRemove_NoOp(t *testing.T) {
	s := New()
	s.ProcessAdd(models.Price{ProductId: "T2Y", Mid: 100, Spread: 0.1})
	s.ProcessRemove(models.Price{ProductId: "T2Y", Mid: 100, Spread: 0.1})

	_, err := s.GetData("T2Y")
	require.NoError(t, err)
}
