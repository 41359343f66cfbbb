// Package decision turns candidate offers into profit estimates a
// participant can inspect before committing. It owns no negotiation state;
// the charting side only ever consumes its return values.
package decision

import (
	"fmt"
	"math"

	"bargainer/internal/econ"
	"bargainer/models"
)

// ValidationError reports analysis input that is outside the numeric domain.
// It is recovered locally (the caller disables the render), never sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("decision: invalid %s: %s", e.Field, e.Reason)
}

// Engine evaluates candidate offers against fixed market parameters.
type Engine struct {
	params     econ.Params
	isSupplier bool
}

// NewEngine builds an engine for the session's market parameters.
// Params must already be Validate-clean; degenerate demand bounds are a
// configuration error refused at session start.
func NewEngine(params econ.Params, isSupplier bool) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: params, isSupplier: isSupplier}, nil
}

func (e *Engine) roles() (mine, other string) {
	if e.isSupplier {
		return "Supplier (You)", "Buyer (Counterpart)"
	}
	return "Buyer (You)", "Supplier (Counterpart)"
}

func (e *Engine) checkInputs(price float64, quantity int) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be a positive number"}
	}
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	return nil
}

// EvaluateScenario computes the single-point profit breakdown for one
// candidate offer. Sales are clamped to min(quantity, expected demand); the
// same clamping base feeds the sweep's expectation lines so the two
// presentation modes can never disagree.
func (e *Engine) EvaluateScenario(price float64, quantity int) (models.ProfitScenario, error) {
	if err := e.checkInputs(price, quantity); err != nil {
		return models.ProfitScenario{}, err
	}

	q := float64(quantity)
	demand := e.params.ExpectedDemand(q)
	sales := econ.ExpectedSales(q, demand)
	supplierProfit, buyerProfit := e.params.ProfitsAt(price, q, sales)

	myRole, otherRole := e.roles()
	scenario := models.ProfitScenario{
		Price:          price,
		Quantity:       quantity,
		ExpectedDemand: demand,
		ExpectedSales:  sales,
		MyRole:         myRole,
		OtherRole:      otherRole,
	}
	if e.isSupplier {
		scenario.MyProfit = supplierProfit
		scenario.OtherProfit = buyerProfit
	} else {
		scenario.MyProfit = buyerProfit
		scenario.OtherProfit = supplierProfit
	}
	return scenario, nil
}

// BuildSweep computes both parties' profits at every integer demand
// realization in [DemandMin, DemandMax], with realized sales capped at
// min(quantity, demand), plus the expected-point profits as constant
// reference lines. The series is regenerated on every call; inputs are small
// and calls are user-triggered, so nothing is cached.
func (e *Engine) BuildSweep(price float64, quantity int) (models.ProfitSeries, error) {
	if err := e.checkInputs(price, quantity); err != nil {
		return models.ProfitSeries{}, err
	}

	q := float64(quantity)
	series := models.ProfitSeries{
		Price:    price,
		Quantity: quantity,
		Points:   make([]models.ProfitPoint, 0, e.params.DemandMax-e.params.DemandMin+1),
	}

	for d := e.params.DemandMin; d <= e.params.DemandMax; d++ {
		sales := econ.ExpectedSales(q, float64(d))
		supplierProfit, buyerProfit := e.params.ProfitsAt(price, q, sales)
		series.Points = append(series.Points, models.ProfitPoint{
			DemandLevel:    d,
			SupplierProfit: supplierProfit,
			BuyerProfit:    buyerProfit,
		})
	}

	demand := e.params.ExpectedDemand(q)
	sales := econ.ExpectedSales(q, demand)
	series.ExpectedDemand = demand
	series.ExpectedSupplierProfit, series.ExpectedBuyerProfit = e.params.ProfitsAt(price, q, sales)

	return series, nil
}
