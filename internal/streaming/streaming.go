// Package streaming implements StreamingService: a passthrough republisher
// of PriceStream records, optionally fanning the latest stream out to a
// publishing sink set with SetSink.
package streaming

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// Sink receives the latest PriceStream whenever one is republished.
type Sink interface {
	PublishStream(models.PriceStream)
}

// Service republishes PriceStream records through its own keyed store.
type Service struct {
	store *soa.Store[models.PriceStream]
	sink  Sink
}

// New constructs a StreamingService with no publishing sink.
func New() *Service {
	s := &Service{store: soa.NewStore[models.PriceStream]()}
	s.store.BindOwner(s)
	return s
}

// SetSink configures the sink every republished stream is additionally
// dispatched to.
func (s *Service) SetSink(sink Sink) {
	s.sink = sink
}

// GetData returns the latest republished PriceStream for productId.
func (s *Service) GetData(productId string) (models.PriceStream, error) {
	return s.store.GetData(productId)
}

// AddListener registers a listener for republished PriceStream records.
func (s *Service) AddListener(l soa.Listener[models.PriceStream]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.PriceStream] {
	return s.store.GetListeners()
}

// ProcessAdd handles the first observation of a product's stream.
func (s *Service) ProcessAdd(p models.PriceStream) { s.republish(p) }

// ProcessUpdate handles a subsequent observation.
func (s *Service) ProcessUpdate(p models.PriceStream) { s.republish(p) }

// ProcessRemove is a no-op.
func (s *Service) ProcessRemove(models.PriceStream) {}

func (s *Service) republish(p models.PriceStream) {
	s.store.Put(p.ProductId, p)
	if s.sink != nil {
		s.sink.PublishStream(p)
	}
}
