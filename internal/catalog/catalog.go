// Package catalog provides the static bond reference data and the bond
// yield/duration numerical collaborator the risk service depends on.
//
// Both are opaque, pure dependencies from the risk service's point of view:
// any monotonic, finite-valued implementation is acceptable since downstream
// tests assert PV01 linearity in position, never absolute values. This
// package still implements a real, closed-form-ish bond pricer (Newton-
// Raphson yield solve plus a Macaulay/modified duration from the same
// cash-flow schedule) rather than a stub, so the numbers it returns are at
// least a plausible bond-math answer.
package catalog

import (
	"math"

	"bond-trading-pipeline/internal/errors"
	"bond-trading-pipeline/internal/models"
)

// ProductCatalog is the shared, read-only static reference table of
// treasury products.
type ProductCatalog struct {
	bonds map[string]models.Bond
}

// NewProductCatalog builds the catalog with the seven standard treasury
// tenors.
func NewProductCatalog() *ProductCatalog {
	bonds := []models.Bond{
		{ProductId: "T2Y", Cusip: "912828U40", Ticker: "T 2Y", CouponRate: 0.0200, MaturityYears: 2, FaceValue: 100},
		{ProductId: "T3Y", Cusip: "912828U73", Ticker: "T 3Y", CouponRate: 0.0225, MaturityYears: 3, FaceValue: 100},
		{ProductId: "T5Y", Cusip: "912828V24", Ticker: "T 5Y", CouponRate: 0.0275, MaturityYears: 5, FaceValue: 100},
		{ProductId: "T7Y", Cusip: "912828V57", Ticker: "T 7Y", CouponRate: 0.0300, MaturityYears: 7, FaceValue: 100},
		{ProductId: "T10Y", Cusip: "912828V81", Ticker: "T 10Y", CouponRate: 0.0325, MaturityYears: 10, FaceValue: 100},
		{ProductId: "T20Y", Cusip: "912810SZ9", Ticker: "T 20Y", CouponRate: 0.0375, MaturityYears: 20, FaceValue: 100},
		{ProductId: "T30Y", Cusip: "912810SY2", Ticker: "T 30Y", CouponRate: 0.0400, MaturityYears: 30, FaceValue: 100},
	}

	c := &ProductCatalog{bonds: make(map[string]models.Bond, len(bonds))}
	for _, b := range bonds {
		c.bonds[b.ProductId] = b
	}
	return c
}

// GetBond looks up the static reference data for productId, returning
// MissingProductError for an unknown product.
func (c *ProductCatalog) GetBond(productId string) (models.Bond, error) {
	b, ok := c.bonds[productId]
	if !ok {
		return models.Bond{}, &errors.MissingProductError{ProductId: productId}
	}
	return b, nil
}

// AllProducts returns all known product ids, in unspecified order.
func (c *ProductCatalog) AllProducts() []string {
	ids := make([]string, 0, len(c.bonds))
	for id := range c.bonds {
		ids = append(ids, id)
	}
	return ids
}

// cashflows returns the bond's remaining coupon/principal payments as
// (periodFraction-of-year, amount) pairs out to maturity, at the given
// payment frequency per year.
func cashflows(bond models.Bond, frequency int) []struct {
	t      float64
	amount float64
} {
	periods := int(math.Round(bond.MaturityYears * float64(frequency)))
	if periods < 1 {
		periods = 1
	}
	coupon := bond.CouponRate * bond.FaceValue / float64(frequency)

	cfs := make([]struct {
		t      float64
		amount float64
	}, periods)
	for i := 1; i <= periods; i++ {
		amount := coupon
		if i == periods {
			amount += bond.FaceValue
		}
		cfs[i-1] = struct {
			t      float64
			amount float64
		}{t: float64(i) / float64(frequency), amount: amount}
	}
	return cfs
}

func priceAt(bond models.Bond, yield float64, frequency int) float64 {
	var price float64
	for _, cf := range cashflows(bond, frequency) {
		price += cf.amount / math.Pow(1+yield/float64(frequency), cf.t*float64(frequency))
	}
	return price
}

// ComputeYield solves, via Newton-Raphson, the periodic-compounding yield
// that reprices bond's remaining cash flows to mid. Monotonic and finite
// for any mid in a sane range.
func ComputeYield(bond models.Bond, mid float64, frequency int) float64 {
	if frequency < 1 {
		frequency = 1
	}
	y := bond.CouponRate
	if y <= 0 {
		y = 0.01
	}

	const h = 1e-6
	for i := 0; i < 50; i++ {
		p := priceAt(bond, y, frequency)
		diff := p - mid
		if math.Abs(diff) < 1e-9 {
			break
		}
		pPlus := priceAt(bond, y+h, frequency)
		derivative := (pPlus - p) / h
		if derivative == 0 {
			break
		}
		next := y - diff/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		// Keep the solve within a sane yield range so it stays finite and
		// monotonic even for pathological inputs.
		if next < -0.5 {
			next = -0.5
		}
		if next > 1.0 {
			next = 1.0
		}
		y = next
	}
	return y
}

// CalculateDuration computes the modified duration of bond's remaining cash
// flows at the given yield and payment frequency, using faceValue as the
// redemption amount.
func CalculateDuration(bond models.Bond, yield float64, faceValue float64, frequency int) float64 {
	if frequency < 1 {
		frequency = 1
	}
	adjusted := bond
	adjusted.FaceValue = faceValue

	price := priceAt(adjusted, yield, frequency)
	if price == 0 {
		return 0
	}

	var weightedTime float64
	for _, cf := range cashflows(adjusted, frequency) {
		discounted := cf.amount / math.Pow(1+yield/float64(frequency), cf.t*float64(frequency))
		weightedTime += cf.t * discounted
	}

	macaulay := weightedTime / price
	return macaulay / (1 + yield/float64(frequency))
}
