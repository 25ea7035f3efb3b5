package marketdata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

func rawBook() models.OrderBook {
	return models.OrderBook{
		ProductId: "T3Y",
		BidStack: []models.DepthOrder{
			{Price: 99.0, Quantity: 100, Side: models.Bid},
			{Price: 100.0, Quantity: 50, Side: models.Bid},
			{Price: 99.0, Quantity: 25, Side: models.Bid},
		},
		OfferStack: []models.DepthOrder{
			{Price: 101.0, Quantity: 60, Side: models.Offer},
			{Price: 100.5, Quantity: 40, Side: models.Offer},
			{Price: 101.0, Quantity: 10, Side: models.Offer},
		},
	}
}

func TestOnMessage_PublishesRawNotSorted(t *testing.T) {
	s := New()
	var published models.OrderBook
	s.AddListener(soa.ListenerFuncs[models.OrderBook]{
		OnAdd:    func(v models.OrderBook) { published = v },
		OnUpdate: func(v models.OrderBook) { published = v },
	})

	raw := rawBook()
	s.OnMessage(raw)

	require.Equal(t, raw, published)
}

func TestOnMessage_StoresSortedBook(t *testing.T) {
	s := New()
	s.OnMessage(rawBook())

	stored, err := s.GetData("T3Y")
	require.NoError(t, err)
	require.Equal(t, 100.0, stored.BidStack[0].Price)
	require.True(t, stored.BidStack[0].Price > stored.BidStack[1].Price)
	require.Equal(t, 100.5, stored.OfferStack[0].Price)
	require.True(t, stored.OfferStack[0].Price < stored.OfferStack[1].Price)
}

func TestOnMessage_IsAddThenUpdate(t *testing.T) {
	s := New()
	var events []string
	s.AddListener(soa.ListenerFuncs[models.OrderBook]{
		OnAdd:    func(models.OrderBook) { events = append(events, "add") },
		OnUpdate: func(models.OrderBook) { events = append(events, "update") },
	})

	s.OnMessage(rawBook())
	s.OnMessage(rawBook())

	require.Equal(t, []string{"add", "update"}, events)
}

func TestAggregateDepth_Invariant4(t *testing.T) {
	s := New()
	s.OnMessage(rawBook())

	agg, err := s.AggregateDepth("T3Y")
	require.NoError(t, err)

	seenBid := make(map[float64]bool)
	var lastBid float64 = 1e18
	var totalBidQty float64
	for _, o := range agg.BidStack {
		require.False(t, seenBid[o.Price], "duplicate bid price in aggregated view")
		seenBid[o.Price] = true
		require.True(t, o.Price < lastBid, "bid side must be strictly descending")
		lastBid = o.Price
		totalBidQty += o.Quantity
	}
	require.Equal(t, 175.0, totalBidQty)

	seenOffer := make(map[float64]bool)
	var lastOffer float64 = -1
	var totalOfferQty float64
	for _, o := range agg.OfferStack {
		require.False(t, seenOffer[o.Price], "duplicate offer price in aggregated view")
		seenOffer[o.Price] = true
		require.True(t, o.Price > lastOffer, "offer side must be strictly ascending")
		lastOffer = o.Price
		totalOfferQty += o.Quantity
	}
	require.Equal(t, 110.0, totalOfferQty)
}

func TestGetBestBidOffer(t *testing.T) {
	s := New()
	s.OnMessage(rawBook())

	bbo, err := s.GetBestBidOffer("T3Y")
	require.NoError(t, err)
	require.Equal(t, 100.0, bbo.Bid.Price)
	require.Equal(t, 100.5, bbo.Offer.Price)
}
