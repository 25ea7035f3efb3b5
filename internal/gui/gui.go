// Package gui implements GUIThrottle: a rate-limited, human-readable sink
// for Price events.
package gui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"bond-trading-pipeline/internal/clock"
	"bond-trading-pipeline/internal/fraction"
	"bond-trading-pipeline/internal/models"
)

var (
	bidColor   = color.New(color.FgGreen)
	offerColor = color.New(color.FgRed)
)

// Service is the GUI throttle: at most maxPrints lines, no more often than
// minInterval apart, with no in-memory backlog - events between writes are
// simply dropped.
type Service struct {
	out         io.Writer
	console     io.Writer
	maxPrints   int
	minInterval time.Duration
	now         func() time.Time

	printCount int
	lastWrite  time.Time
}

// New constructs a GUIThrottle writing labeled lines to out (and, if
// console is non-nil, a colorized echo to it).
func New(out io.Writer, console io.Writer, maxPrints int, minInterval time.Duration) *Service {
	return &Service{
		out:         out,
		console:     console,
		maxPrints:   maxPrints,
		minInterval: minInterval,
		now:         time.Now,
		lastWrite:   time.Now(),
	}
}

// ProcessAdd handles the first Price seen for a product.
func (s *Service) ProcessAdd(p models.Price) { s.onPrice(p) }

// ProcessUpdate handles a subsequent Price for a product.
func (s *Service) ProcessUpdate(p models.Price) { s.onPrice(p) }

// ProcessRemove is a no-op.
func (s *Service) ProcessRemove(models.Price) {}

func (s *Service) onPrice(p models.Price) {
	now := s.now()
	if s.printCount >= s.maxPrints || now.Sub(s.lastWrite) < s.minInterval {
		return
	}

	fracMid := fraction.Format(p.Mid)
	fracSpread := fraction.Format(p.Spread)

	fmt.Fprintf(s.out, "%s %s %s %s\n", clock.ISO8601Millis(now), p.ProductId, fracMid, fracSpread)

	if s.console != nil {
		bidColor.Fprintf(s.console, "%s %s bid=%s ", clock.ISO8601Millis(now), p.ProductId, fraction.Format(p.Bid()))
		offerColor.Fprintf(s.console, "offer=%s\n", fraction.Format(p.OfferPrice()))
	}

	s.printCount++
	s.lastWrite = now
}
