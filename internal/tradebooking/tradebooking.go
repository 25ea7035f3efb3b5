// Package tradebooking implements TradeBookingService: the keyed store of
// booked trades, fed by both the external trade feed and ExecutionService.
package tradebooking

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// Service stores booked trades keyed by TradeId.
type Service struct {
	store *soa.Store[models.Trade]
}

// New constructs an empty TradeBookingService.
func New() *Service {
	s := &Service{store: soa.NewStore[models.Trade]()}
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

// BookTrade stores t, firing Add on first observation of its TradeId or
// Update thereafter. OnMessage delegates here so both the external trade
// feed and ExecutionService funnel through the same path.
func (s *Service) BookTrade(t models.Trade) {
	s.store.Put(t.TradeId, t)
}

// OnMessage ingests a trade from the external feed.
func (s *Service) OnMessage(t models.Trade) {
	s.BookTrade(t)
}

// ProcessAdd handles the first Trade seen from ExecutionService for an
// order.
func (s *Service) ProcessAdd(t models.Trade) { s.BookTrade(t) }

// ProcessUpdate handles a subsequent Trade from ExecutionService.
func (s *Service) ProcessUpdate(t models.Trade) { s.BookTrade(t) }

// ProcessRemove deletes the trade and forwards the removal to this
// service's own listeners.
func (s *Service) ProcessRemove(t models.Trade) {
	s.store.Delete(t.TradeId)
}
