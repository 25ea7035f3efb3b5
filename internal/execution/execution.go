// Package execution implements ExecutionService: the multi-market routing
// state machine that turns an ExecutionOrder into a booked Trade.
package execution

import (
	"fmt"

	"github.com/rs/zerolog"

	"bond-trading-pipeline/internal/errors"
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// state is the per-market execution outcome.
type state int

const (
	executed state = iota
	cancelled
	rejected
)

// Service routes ExecutionOrder records across a fixed list of markets and
// books a Trade on fill.
type Service struct {
	store        *soa.Store[models.Trade]
	logger       zerolog.Logger
	markets      []string
	books        []string
	bookCursor   int
	knownParents map[string]bool
}

// New constructs an ExecutionService routing across markets and round-
// robining trades across books, in the given fixed orders.
func New(logger zerolog.Logger, markets, books []string) *Service {
	s := &Service{
		store:        soa.NewStore[models.Trade](),
		logger:       logger,
		markets:      markets,
		books:        books,
		knownParents: make(map[string]bool),
	}
	s.store.BindOwner(s)
	return s
}

// GetData returns the booked trade for tradeId.
func (s *Service) GetData(tradeId string) (models.Trade, error) {
	return s.store.GetData(tradeId)
}

// AddListener registers a listener for Trade publications.
func (s *Service) AddListener(l soa.Listener[models.Trade]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.Trade] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first ExecutionOrder seen for a product.
func (s *Service) ProcessAdd(order models.ExecutionOrder) { s.route(order) }

// ProcessUpdate handles a subsequent ExecutionOrder for a product.
func (s *Service) ProcessUpdate(order models.ExecutionOrder) { s.route(order) }

// ProcessRemove is a no-op.
func (s *Service) ProcessRemove(models.ExecutionOrder) {}

func (s *Service) route(order models.ExecutionOrder) {
	if order.IsChildOrder {
		if !s.knownParents[order.ParentOrderId] {
			s.logger.Warn().Err(&errors.DanglingChildOrderError{
				OrderId:       order.OrderId,
				ParentOrderId: order.ParentOrderId,
			}).Msg("dropping child order")
			return
		}
	}
	s.knownParents[order.OrderId] = true

	effectiveQty := order.EffectiveQuantity()

	var outcome state
marketLoop:
	for _, market := range s.markets {
		switch order.OrderType {
		case models.FOK:
			if effectiveQty >= order.VisibleQty {
				outcome = executed
			} else {
				outcome = cancelled
			}
		case models.IOC:
			if effectiveQty > 0 {
				outcome = executed
			} else {
				outcome = cancelled
			}
		case models.Market:
			outcome = executed
		case models.Limit, models.Stop:
			outcome = rejected
		default:
			outcome = rejected
		}

		if outcome == cancelled {
			s.logger.Warn().Str("order_id", order.OrderId).Str("market", market).Msg("order cancelled")
			return
		}
		if outcome == executed {
			s.logger.Info().Str("order_id", order.OrderId).Str("market", market).Msg("order executed")
			break marketLoop
		}
		s.logger.Info().Str("order_id", order.OrderId).Str("market", market).Msg("order rejected in market")
	}

	if outcome != executed {
		return
	}

	book := s.books[s.bookCursor]
	s.bookCursor = (s.bookCursor + 1) % len(s.books)

	side := models.Sell
	if order.Side == models.Bid {
		side = models.Buy
	}

	trade := models.Trade{
		TradeId:   fmt.Sprintf("TRADE_%s", order.OrderId),
		ProductId: order.ProductId,
		Price:     order.Price,
		Book:      book,
		Quantity:  order.VisibleQty,
		Side:      side,
	}
	s.store.Put(trade.TradeId, trade)
}
