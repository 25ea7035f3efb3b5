// Package algoexecution implements AlgoExecutionService: derives an
// aggressing MARKET ExecutionOrder whenever top-of-book spread is tight
// enough to cross.
package algoexecution

import (
	"github.com/rs/zerolog"

	"bond-trading-pipeline/internal/errors"
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

const (
	minSpread = 1.0 / 128.0
	epsilon   = 1e-9
)

// Service derives ExecutionOrder records from OrderBook updates.
type Service struct {
	store          *soa.Store[models.ExecutionOrder]
	logger         zerolog.Logger
	lastAggressBid bool // false means the NEXT aggress hits the BID
}

// New constructs an AlgoExecutionService.
func New(logger zerolog.Logger) *Service {
	s := &Service{store: soa.NewStore[models.ExecutionOrder](), logger: logger}
	s.store.BindOwner(s)
	return s
}

// GetData returns the latest ExecutionOrder for productId.
func (s *Service) GetData(productId string) (models.ExecutionOrder, error) {
	return s.store.GetData(productId)
}

// AddListener registers a listener for ExecutionOrder publications.
func (s *Service) AddListener(l soa.Listener[models.ExecutionOrder]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.ExecutionOrder] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first OrderBook seen for a product.
func (s *Service) ProcessAdd(book models.OrderBook) { s.execute(book) }

// ProcessUpdate handles a subsequent OrderBook for a product.
func (s *Service) ProcessUpdate(book models.OrderBook) { s.execute(book) }

// ProcessRemove is a no-op: AlgoExecutionService does not react to book
// removal.
func (s *Service) ProcessRemove(models.OrderBook) {}

func (s *Service) execute(book models.OrderBook) {
	if len(book.BidStack) == 0 || len(book.OfferStack) == 0 {
		s.logger.Warn().Err(&errors.EmptyBookError{ProductId: book.ProductId}).Msg("skipping algo execution")
		return
	}

	bestBid := book.BidStack[0]
	bestOffer := book.OfferStack[0]
	spread := bestOffer.Price - bestBid.Price
	if spread > minSpread+epsilon {
		return
	}

	aggressBid := !s.lastAggressBid
	s.lastAggressBid = aggressBid

	var side models.Side
	var price, quantity float64
	if aggressBid {
		side = models.Bid
		price, quantity = bestBid.Price, bestBid.Quantity
	} else {
		side = models.Offer
		price, quantity = bestOffer.Price, bestOffer.Quantity
	}

	order := models.ExecutionOrder{
		OrderId:       book.ProductId,
		ProductId:     book.ProductId,
		Side:          side,
		OrderType:     models.Market,
		Price:         price,
		VisibleQty:    quantity,
		HiddenQty:     0,
		ParentOrderId: "",
		IsChildOrder:  false,
	}
	s.store.Put(book.ProductId, order)
}
