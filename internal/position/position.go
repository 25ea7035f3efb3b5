// Package position implements PositionService: per-book and aggregate
// positions built from booked trades.
package position

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// Service accumulates signed per-book quantities per product from Trade
// events.
type Service struct {
	store *soa.Store[models.Position]
}

// New constructs an empty PositionService.
func New() *Service {
	s := &Service{store: soa.NewStore[models.Position]()}
	s.store.BindOwner(s)
	return s
}

// GetData returns a read-only copy of the position for productId.
func (s *Service) GetData(productId string) (models.Position, error) {
	p, err := s.store.GetData(productId)
	if err != nil {
		return models.Position{}, err
	}
	return p.Clone(), nil
}

// AddListener registers a listener for Position publications.
func (s *Service) AddListener(l soa.Listener[models.Position]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.Position] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first trade booked for a product.
func (s *Service) ProcessAdd(t models.Trade) { s.apply(t) }

// ProcessUpdate handles a subsequent trade booked for a product.
func (s *Service) ProcessUpdate(t models.Trade) { s.apply(t) }

// ProcessRemove reverses the trade's effect (sign flipped) before
// forwarding the resulting change as an Update.
func (s *Service) ProcessRemove(t models.Trade) {
	reversed := t
	if t.Side == models.Buy {
		reversed.Side = models.Sell
	} else {
		reversed.Side = models.Buy
	}
	s.apply(reversed)
}

func (s *Service) apply(t models.Trade) {
	existing, err := s.store.GetData(t.ProductId)
	var pos models.Position
	if err != nil {
		pos = models.Position{ProductId: t.ProductId, Books: make(map[string]float64)}
	} else {
		pos = existing.Clone()
	}

	delta := t.Quantity
	if t.Side == models.Sell {
		delta = -delta
	}
	pos.Books[t.Book] += delta

	s.store.Put(t.ProductId, pos)
}
