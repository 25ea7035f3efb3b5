// Package pricing implements PricingService: the keyed store of latest
// mid/spread quotes per bond.
package pricing

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// Service stores the latest Price per product and republishes on every
// OnMessage. It carries no derived state of its own.
type Service struct {
	store *soa.Store[models.Price]
}

// New constructs an empty PricingService.
func New() *Service {
	s := &Service{store: soa.NewStore[models.Price]()}
	s.store.BindOwner(s)
	return s
}

// GetData returns the latest price for productId.
func (s *Service) GetData(productId string) (models.Price, error) {
	return s.store.GetData(productId)
}

// OnMessage ingests a new Price, replacing any existing entry for the
// product and firing Add or Update accordingly.
func (s *Service) OnMessage(p models.Price) {
	s.store.Put(p.ProductId, p)
}

// AddListener registers a listener for Price publications.
func (s *Service) AddListener(l soa.Listener[models.Price]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.Price] {
	return s.store.GetListeners()
}
