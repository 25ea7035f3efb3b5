// Package risk implements RiskService: PV01 per bond, recomputed on every
// position change, and bucketed roll-ups across named sectors.
package risk

import (
	"bond-trading-pipeline/internal/catalog"
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// PriceSource is the subset of PricingService RiskService depends on.
type PriceSource interface {
	GetData(productId string) (models.Price, error)
}

// Catalog is the subset of ProductCatalog RiskService depends on.
type Catalog interface {
	GetBond(productId string) (models.Bond, error)
}

const couponFrequency = 2

// Service computes and stores PV01 risk per product.
type Service struct {
	store   *soa.Store[models.PV01]
	pricing PriceSource
	catalog Catalog
}

// New constructs a RiskService reading mids from pricing and bond terms
// from the given catalog.
func New(pricing PriceSource, catalog Catalog) *Service {
	s := &Service{store: soa.NewStore[models.PV01](), pricing: pricing, catalog: catalog}
	s.store.BindOwner(s)
	return s
}

// GetData returns the stored PV01 for productId.
func (s *Service) GetData(productId string) (models.PV01, error) {
	return s.store.GetData(productId)
}

// AddListener registers a listener for PV01 publications.
func (s *Service) AddListener(l soa.Listener[models.PV01]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.PV01] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first position observed for a product.
func (s *Service) ProcessAdd(pos models.Position) { s.AddPosition(pos) }

// ProcessUpdate handles a subsequent position change for a product.
func (s *Service) ProcessUpdate(pos models.Position) { s.AddPosition(pos) }

// AddPosition recomputes PV01 for pos's product from its current aggregate
// quantity and the latest mid from the pricing service.
func (s *Service) AddPosition(pos models.Position) {
	pv01PerUnit, ok := s.pv01PerUnit(pos.ProductId)
	if !ok {
		return
	}

	agg := pos.Aggregate()
	pv01 := models.PV01{Key: pos.ProductId, Pv01: pv01PerUnit * agg, Quantity: agg}
	s.store.Put(pos.ProductId, pv01)
}

// ProcessRemove reverses pos's contribution to the stored PV01. If the
// resulting aggregate quantity nets to zero, the entry is erased silently
// (no listener notification); otherwise the reduced figure is published as
// an Update.
func (s *Service) ProcessRemove(pos models.Position) {
	existing, err := s.store.GetData(pos.ProductId)
	if err != nil {
		return
	}

	pv01PerUnit, ok := s.pv01PerUnit(pos.ProductId)
	if !ok {
		return
	}

	negAgg := -pos.Aggregate()
	updated := models.PV01{
		Key:      pos.ProductId,
		Pv01:     existing.Pv01 + pv01PerUnit*negAgg,
		Quantity: existing.Quantity + negAgg,
	}

	if updated.Quantity == 0 {
		s.store.DeleteSilent(pos.ProductId)
		return
	}
	s.store.Put(pos.ProductId, updated)
}

func (s *Service) pv01PerUnit(productId string) (float64, bool) {
	price, err := s.pricing.GetData(productId)
	if err != nil {
		return 0, false
	}
	bond, err := s.catalog.GetBond(productId)
	if err != nil {
		return 0, false
	}

	yield := catalog.ComputeYield(bond, price.Mid, couponFrequency)
	duration := catalog.CalculateDuration(bond, yield, bond.FaceValue, couponFrequency)
	return duration * price.Mid * 0.0001, true
}

// GetBucketedRisk sums pv01 and quantity over sector's products (missing
// products contribute zero) and returns a fresh PV01 record keyed by the
// sector name.
func (s *Service) GetBucketedRisk(sector models.BucketedSector) models.PV01 {
	var totalPV01, totalQty float64
	for _, productId := range sector.Products {
		if pv01, err := s.store.GetData(productId); err == nil {
			totalPV01 += pv01.Pv01
			totalQty += pv01.Quantity
		}
	}
	return models.PV01{Key: sector.Name, Pv01: totalPV01, Quantity: totalQty}
}
