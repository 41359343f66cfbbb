// Package econ implements the market model underlying the negotiation: the
// expected-demand curve for an announced quantity and the profit split
// between supplier and buyer at a candidate price. All functions are pure.
package econ

import (
	"errors"
	"fmt"
)

// ErrDegenerateDemand marks parameters where the demand bounds collapse; the
// expected-demand formula divides by their difference.
var ErrDegenerateDemand = errors.New("econ: demand bounds must satisfy max > min")

// Params are the immutable market parameters of one negotiation session.
type Params struct {
	MarketPrice    float64
	ProductionCost float64
	DemandMin      int
	DemandMax      int
}

// Validate fails fast on parameters the model cannot evaluate.
func (p Params) Validate() error {
	if p.DemandMax <= p.DemandMin {
		return ErrDegenerateDemand
	}
	if p.MarketPrice <= 0 {
		return fmt.Errorf("econ: market price must be positive, got %v", p.MarketPrice)
	}
	if p.ProductionCost < 0 {
		return fmt.Errorf("econ: production cost must be non-negative, got %v", p.ProductionCost)
	}
	return nil
}

// ExpectedDemand forecasts market demand for an announced quantity. It is
// the expectation integral over a linear demand curve:
//
//	((q² - min²)/2 + q·(max - q)) / (max - min)
//
// clamped to [0, max]. Callers must hold Validate-clean params.
func (p Params) ExpectedDemand(quantity float64) float64 {
	dmin := float64(p.DemandMin)
	dmax := float64(p.DemandMax)

	numerator := (quantity*quantity-dmin*dmin)/2 + quantity*(dmax-quantity)
	demand := numerator / (dmax - dmin)

	if demand < 0 {
		return 0
	}
	if demand > dmax {
		return dmax
	}
	return demand
}

// ExpectedSales caps sales at both the demand realization and the announced
// production quantity.
func ExpectedSales(quantity, demand float64) float64 {
	if quantity < demand {
		return quantity
	}
	return demand
}

// ProfitsAt computes both parties' profits for a candidate price and
// quantity when sales turn out to be sales. The two formulas are
// role-symmetric; relabeling them as mine/theirs is the caller's concern.
func (p Params) ProfitsAt(price, quantity, sales float64) (supplierProfit, buyerProfit float64) {
	supplierProfit = price*sales - p.ProductionCost*quantity
	buyerProfit = (p.MarketPrice - price) * sales
	return supplierProfit, buyerProfit
}
