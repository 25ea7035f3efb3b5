// Package inquiry implements InquiryService: the customer inquiry state
// machine RECEIVED -> QUOTED -> DONE, with RejectInquiry moving any state to
// REJECTED.
package inquiry

import (
	"bond-trading-pipeline/internal/models"
	"bond-trading-pipeline/internal/soa"
)

// quotePrice is the fixed price SendQuote quotes every inquiry at.
const quotePrice = 100.0

// Service drives inquiries through their state machine. OnMessage is
// re-entrant: a RECEIVED inquiry calls back into OnMessage with a QUOTED
// inquiry, which calls back again with a DONE inquiry, so the keyed store
// must tolerate overwrite-in-progress - each step writes its own local
// value before recursing.
type Service struct {
	store *soa.Store[models.Inquiry]
}

// New constructs an empty InquiryService.
func New() *Service {
	s := &Service{store: soa.NewStore[models.Inquiry]()}
	s.store.BindOwner(s)
	return s
}

// GetData returns the stored inquiry for inquiryId.
func (s *Service) GetData(inquiryId string) (models.Inquiry, error) {
	return s.store.GetData(inquiryId)
}

// AddListener registers a listener for Inquiry publications.
func (s *Service) AddListener(l soa.Listener[models.Inquiry]) {
	s.store.AddListener(l)
}

// GetListeners returns the registered listeners in registration order.
func (s *Service) GetListeners() []soa.Listener[models.Inquiry] {
	return s.store.GetListeners()
}

// OnMessage ingests an inquiry, storing it and driving the next state
// transition: RECEIVED triggers SendQuote, QUOTED self-loops into DONE.
func (s *Service) OnMessage(inq models.Inquiry) {
	s.store.Put(inq.InquiryId, inq)

	switch inq.State {
	case models.Received:
		s.SendQuote(inq)
	case models.Quoted:
		done := inq
		done.State = models.Done
		s.OnMessage(done)
	}
}

// SendQuote constructs a QUOTED inquiry at quotePrice and re-enters
// OnMessage.
func (s *Service) SendQuote(inq models.Inquiry) {
	quoted := inq
	quoted.State = models.Quoted
	quoted.Price = quotePrice
	s.OnMessage(quoted)
}

// RejectInquiry moves inq to REJECTED and publishes the update.
func (s *Service) RejectInquiry(inq models.Inquiry) {
	rejected := inq
	rejected.State = models.Rejected
	s.store.Put(rejected.InquiryId, rejected)
}
