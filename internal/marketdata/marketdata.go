// Package marketdata implements MarketDataService: stores and aggregates
// per-bond order-book depth.
package marketdata

import (
	"sort"

	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// Service stores the sorted order book per product and a parallel
// aggregated-by-price view.
type Service struct {
	store      *soa.Store[models.OrderBook]
	aggregated map[string]models.OrderBook
}

// New constructs an empty MarketDataService.
func New() *Service {
	s := &Service{
		store:      soa.NewStore[models.OrderBook](),
		aggregated: make(map[string]models.OrderBook),
	}
	s.store.BindOwner(s)
	return s
}

// GetData returns the sorted (non-aggregated) order book for productId.
func (s *Service) GetData(productId string) (models.OrderBook, error) {
	return s.store.GetData(productId)
}

// AddListener registers a listener for OrderBook publications.
func (s *Service) AddListener(l soa.Listener[models.OrderBook]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.OrderBook] {
	return s.store.GetListeners()
}

// GetBestBidOffer returns the front of each sorted stack for productId.
func (s *Service) GetBestBidOffer(productId string) (models.BestBidOffer, error) {
	book, err := s.store.GetData(productId)
	if err != nil {
		return models.BestBidOffer{}, err
	}
	var bbo models.BestBidOffer
	if len(book.BidStack) > 0 {
		bbo.Bid = book.BidStack[0]
	}
	if len(book.OfferStack) > 0 {
		bbo.Offer = book.OfferStack[0]
	}
	return bbo, nil
}

// AggregateDepth returns the aggregated (duplicate-price-collapsed) view for
// productId.
func (s *Service) AggregateDepth(productId string) (models.OrderBook, error) {
	book, ok := s.aggregated[productId]
	if !ok {
		_, err := s.store.GetData(productId)
		return models.OrderBook{}, err
	}
	return book, nil
}

// OnMessage sorts the incoming stacks (bids descending, offers ascending),
// stores the sorted book, recomputes the aggregated view, then publishes
// the record exactly as received - the "raw" OrderBook, not the sorted or
// aggregated one - deciding Add vs Update on first-seen-per-product.
func (s *Service) OnMessage(raw models.OrderBook) {
	isNew := !s.store.Has(raw.ProductId)

	sorted := sortBook(raw)
	s.store.PutSilent(raw.ProductId, sorted)
	s.aggregated[raw.ProductId] = aggregate(sorted)

	s.store.Notify(isNew, raw)
}

func sortBook(book models.OrderBook) models.OrderBook {
	bids := append([]models.DepthOrder(nil), book.BidStack...)
	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Price > bids[j].Price })

	offers := append([]models.DepthOrder(nil), book.OfferStack...)
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].Price < offers[j].Price })

	return models.OrderBook{ProductId: book.ProductId, BidStack: bids, OfferStack: offers}
}

func aggregate(book models.OrderBook) models.OrderBook {
	return models.OrderBook{
		ProductId:  book.ProductId,
		BidStack:   collapse(book.BidStack, true),
		OfferStack: collapse(book.OfferStack, false),
	}
}

// collapse sums quantities for same-priced orders, keeping the side's sort
// order (descending for bids, ascending for offers).
func collapse(orders []models.DepthOrder, descending bool) []models.DepthOrder {
	if len(orders) == 0 {
		return nil
	}

	totals := make(map[float64]float64)
	var prices []float64
	for _, o := range orders {
		if _, seen := totals[o.Price]; !seen {
			prices = append(prices, o.Price)
		}
		totals[o.Price] += o.Quantity
	}

	sort.Slice(prices, func(i, j int) bool {
		if descending {
			return prices[i] > prices[j]
		}
		return prices[i] < prices[j]
	})

	side := models.Bid
	if !descending {
		side = models.Offer
	}

	result := make([]models.DepthOrder, 0, len(prices))
	for _, p := range prices {
		result = append(result, models.DepthOrder{Price: p, Quantity: totals[p], Side: side})
	}
	return result
}
