package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrice_BidAndOfferPrice_StraddleMid(t *testing.T) {
	p := Price{ProductId: "T2Y", Mid: 100.0, Spread: 0.25}
	require.Equal(t, 99.875, p.Bid())
	require.Equal(t, 100.125, p.OfferPrice())
}

func TestExecutionOrder_EffectiveQuantity_PrefersVisible(t *testing.T) {
	visible := ExecutionOrder{VisibleQty: 1000, HiddenQty: 5000}
	require.Equal(t, 1000.0, visible.EffectiveQuantity())

	hiddenOnly := ExecutionOrder{HiddenQty: 5000}
	require.Equal(t, 5000.0, hiddenOnly.EffectiveQuantity())
}

func TestPosition_Aggregate_SumsAcrossBooks(t *testing.T) {
	p := Position{ProductId: "T2Y", Books: map[string]float64{"TRSY1": 1000, "TRSY2": -400}}
	require.Equal(t, 600.0, p.Aggregate())
}

func TestPosition_Clone_IsIndependentOfOriginal(t *testing.T) {
	p := Position{ProductId: "T2Y", Books: map[string]float64{"TRSY1": 1000}}
	clone := p.Clone()
	clone.Books["TRSY1"] = 0

	require.Equal(t, 1000.0, p.Books["TRSY1"])
	require.Equal(t, 0.0, clone.Books["TRSY1"])
}
