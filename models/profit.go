package models

// ProfitScenario is the outcome of evaluating a single candidate
// (price, quantity) against the session's market parameters. It is a pure
// value object; both profits are reported from the local participant's
// point of view.
type ProfitScenario struct {
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	ExpectedDemand float64 `json:"expected_demand"`
	ExpectedSales  float64 `json:"expected_sales"`
	MyProfit       float64 `json:"my_profit"`
	OtherProfit    float64 `json:"other_profit"`
	MyRole         string  `json:"my_role"`
	OtherRole      string  `json:"other_role"`
}

// ProfitPoint is one sample of the demand sweep: both parties' profits if
// the market demand turned out to be DemandLevel.
type ProfitPoint struct {
	DemandLevel    int     `json:"demand_level"`
	SupplierProfit float64 `json:"supplier_profit"`
	BuyerProfit    float64 `json:"buyer_profit"`
}

// ProfitSeries is the full profit-vs-demand curve for one candidate offer,
// sampled at every integer demand level between the demand bounds, plus the
// profits at the expected demand rendered as constant reference lines.
// It is produced transiently per chart render and holds no state.
type ProfitSeries struct {
	Price    float64       `json:"price"`
	Quantity int           `json:"quantity"`
	Points   []ProfitPoint `json:"points"`

	ExpectedDemand         float64 `json:"expected_demand"`
	ExpectedSupplierProfit float64 `json:"expected_supplier_profit"`
	ExpectedBuyerProfit    float64 `json:"expected_buyer_profit"`
}
