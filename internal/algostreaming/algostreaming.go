// Package algostreaming implements AlgoStreamingService: derives a two-sided
// PriceStream from each incoming Price, alternating the visible size per
// product between 1,000,000 and 2,000,000.
package algostreaming

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

const (
	lowVisible  = 1_000_000.0
	highVisible = 2_000_000.0
)

// Service derives PriceStream records from Price updates.
type Service struct {
	store      *soa.Store[models.PriceStream]
	lastWasLow map[string]bool // true once a product's last emission used lowVisible
}

// New constructs an AlgoStreamingService.
func New() *Service {
	s := &Service{
		store:      soa.NewStore[models.PriceStream](),
		lastWasLow: make(map[string]bool),
	}
	s.store.BindOwner(s)
	return s
}

// GetData returns the latest PriceStream for productId.
func (s *Service) GetData(productId string) (models.PriceStream, error) {
	return s.store.GetData(productId)
}

// AddListener registers a listener for PriceStream publications.
func (s *Service) AddListener(l soa.Listener[models.PriceStream]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.PriceStream] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first Price seen for a product: identical handling
// to ProcessUpdate.
func (s *Service) ProcessAdd(p models.Price) { s.stream(p) }

// ProcessUpdate handles a subsequent Price for a product.
func (s *Service) ProcessUpdate(p models.Price) { s.stream(p) }

// ProcessRemove is a no-op: AlgoStreamingService never reacts to Price
// removal.
func (s *Service) ProcessRemove(models.Price) {}

func (s *Service) stream(p models.Price) {
	visible := lowVisible
	if s.lastWasLow[p.ProductId] {
		visible = highVisible
	}
	s.lastWasLow[p.ProductId] = !s.lastWasLow[p.ProductId]

	stream := models.PriceStream{
		ProductId: p.ProductId,
		BidOrder: models.PriceStreamOrder{
			Price:      p.Bid(),
			VisibleQty: visible,
			HiddenQty:  2 * visible,
			Side:       models.Bid,
		},
		OfferOrder: models.PriceStreamOrder{
			Price:      p.OfferPrice(),
			VisibleQty: visible,
			HiddenQty:  2 * visible,
			Side:       models.Offer,
		},
	}
	s.store.Put(p.ProductId, stream)
}
