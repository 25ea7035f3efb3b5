// Package historical implements the five append-only labeled-field sinks
// that record every Position, PV01, PriceStream, Inquiry and Trade
// publication for downstream audit and replay.
package historical

import (
	"fmt"
	"io"
	"sort"
	"time"

	"bond-trading-pipeline/internal/clock"
	"bond-trading-pipeline/internal/models"
)

// now is overridden in tests; production callers leave it at time.Now.
var now = time.Now

// PositionSink records every Position Add/Update as a labeled line.
type PositionSink struct {
	out io.Writer
}

// NewPositionSink constructs a sink writing to out.
func NewPositionSink(out io.Writer) *PositionSink { return &PositionSink{out: out} }

func (s *PositionSink) ProcessAdd(p models.Position)    { s.write(p) }
func (s *PositionSink) ProcessUpdate(p models.Position) { s.write(p) }
func (s *PositionSink) ProcessRemove(models.Position)   {}

// write emits one line per book, sorted for deterministic output, followed
// by the aggregate line across all books.
func (s *PositionSink) write(p models.Position) {
	books := make([]string, 0, len(p.Books))
	for book := range p.Books {
		books = append(books, book)
	}
	sort.Strings(books)

	prefix := clock.OutputPrefix(now())
	for _, book := range books {
		fmt.Fprintf(s.out, "%sproductId=%s book=%s quantity=%.6f\n", prefix, p.ProductId, book, p.Books[book])
	}
	fmt.Fprintf(s.out, "%sproductId=%s aggregate=%.6f\n", prefix, p.ProductId, p.Aggregate())
}

// PV01Sink records every PV01 Add/Update as a labeled line.
type PV01Sink struct {
	out io.Writer
}

// NewPV01Sink constructs a sink writing to out.
func NewPV01Sink(out io.Writer) *PV01Sink { return &PV01Sink{out: out} }

func (s *PV01Sink) ProcessAdd(p models.PV01)    { s.write(p) }
func (s *PV01Sink) ProcessUpdate(p models.PV01) { s.write(p) }
func (s *PV01Sink) ProcessRemove(models.PV01)   {}

func (s *PV01Sink) write(p models.PV01) {
	fmt.Fprintf(s.out, "%skey=%s pv01=%.6f quantity=%.6f\n", clock.OutputPrefix(now()), p.Key, p.Pv01, p.Quantity)
}

// PriceStreamSink records every streamed quote as a labeled line.
type PriceStreamSink struct {
	out io.Writer
}

// NewPriceStreamSink constructs a sink writing to out.
func NewPriceStreamSink(out io.Writer) *PriceStreamSink { return &PriceStreamSink{out: out} }

func (s *PriceStreamSink) ProcessAdd(p models.PriceStream)    { s.write(p) }
func (s *PriceStreamSink) ProcessUpdate(p models.PriceStream) { s.write(p) }
func (s *PriceStreamSink) ProcessRemove(models.PriceStream)   {}

func (s *PriceStreamSink) write(p models.PriceStream) {
	fmt.Fprintf(s.out, "%sproductId=%s bidPrice=%.6f bidVisible=%.0f bidHidden=%.0f offerPrice=%.6f offerVisible=%.0f offerHidden=%.0f\n",
		clock.OutputPrefix(now()), p.ProductId,
		p.BidOrder.Price, p.BidOrder.VisibleQty, p.BidOrder.HiddenQty,
		p.OfferOrder.Price, p.OfferOrder.VisibleQty, p.OfferOrder.HiddenQty)
}

// InquirySink records every Inquiry Add/Update as a labeled line.
type InquirySink struct {
	out io.Writer
}

// NewInquirySink constructs a sink writing to out.
func NewInquirySink(out io.Writer) *InquirySink { return &InquirySink{out: out} }

func (s *InquirySink) ProcessAdd(i models.Inquiry)    { s.write(i) }
func (s *InquirySink) ProcessUpdate(i models.Inquiry) { s.write(i) }
func (s *InquirySink) ProcessRemove(models.Inquiry)   {}

func (s *InquirySink) write(i models.Inquiry) {
	fmt.Fprintf(s.out, "%sinquiryId=%s productId=%s side=%s quantity=%.0f price=%.6f state=%s\n",
		clock.OutputPrefix(now()), i.InquiryId, i.ProductId, i.Side, i.Quantity, i.Price, i.State)
}

// TradeSink records every booked trade as a labeled line.
type TradeSink struct {
	out io.Writer
}

// NewTradeSink constructs a sink writing to out.
func NewTradeSink(out io.Writer) *TradeSink { return &TradeSink{out: out} }

func (s *TradeSink) ProcessAdd(t models.Trade)    { s.write(t) }
func (s *TradeSink) ProcessUpdate(t models.Trade) { s.write(t) }
func (s *TradeSink) ProcessRemove(models.Trade)   {}

func (s *TradeSink) write(t models.Trade) {
	fmt.Fprintf(s.out, "%stradeId=%s productId=%s book=%s side=%s quantity=%.0f price=%.6f\n",
		clock.OutputPrefix(now()), t.TradeId, t.ProductId, t.Book, t.Side, t.Quantity, t.Price)
}
