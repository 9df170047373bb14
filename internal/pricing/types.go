package pricing

import (
	"pricingcli/internal/dataset"
)

// Action is the direction of a recommended price change
type Action string

const (
	// ActionIncrease recommends raising the price
	ActionIncrease Action = "INCREASE"
	// ActionDecrease recommends lowering the price
	ActionDecrease Action = "DECREASE"
)

// ProductView is one product's row after joining the catalog with the
// latest inventory, latest-date demand snapshot and all-time average
// competitor price. Unmatched joins leave the Has* flag false and the
// corresponding values zero.
type ProductView struct {
	Product dataset.Product

	QuantityAvailable float64
	StockStatus       dataset.StockStatus
	HasInventory      bool

	DemandScore    float64
	ConversionRate float64
	HasDemand      bool

	AvgCompetitorPrice float64
	HasCompetitorAvg   bool
}

// Recommendation is a single suggested price change for a product.
// It exists only for the duration of one run's rendering and export.
type Recommendation struct {
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	CurrentPrice     float64 `json:"current_price"`
	RecommendedPrice float64 `json:"recommended_price"`
	Action           Action  `json:"action"`
	ChangePct        float64 `json:"change_pct"`
	Reason           string  `json:"reason"`
}

// Params contains the thresholds and multipliers for the ordered rule set
type Params struct {
	// Rule 1: high demand with adequate stock
	HighDemandScore    float64 `json:"high_demand_score"`
	HighDemandMinStock float64 `json:"high_demand_min_stock"`
	HighDemandRaise    float64 `json:"high_demand_raise"`

	// Rule 2: low demand with excess stock
	LowDemandScore    float64 `json:"low_demand_score"`
	LowDemandMinStock float64 `json:"low_demand_min_stock"`
	LowDemandCut      float64 `json:"low_demand_cut"`

	// Rule 3: priced above the competitor average
	CompetitorTolerance float64 `json:"competitor_tolerance"`
	CompetitorUndercut  float64 `json:"competitor_undercut"`

	// Rule 4: low stock with sustained demand
	LowStockDemandScore float64 `json:"low_stock_demand_score"`
	LowStockRaise       float64 `json:"low_stock_raise"`
}

// IsValid checks if the rule parameters are usable
func (p Params) IsValid() bool {
	return p.HighDemandScore > 0 && p.HighDemandMinStock >= 0 && p.HighDemandRaise > 1 &&
		p.LowDemandScore > 0 && p.LowDemandMinStock >= 0 &&
		p.LowDemandCut > 0 && p.LowDemandCut < 1 &&
		p.CompetitorTolerance >= 1 && p.CompetitorUndercut > 0 && p.CompetitorUndercut <= 1 &&
		p.LowStockDemandScore > 0 && p.LowStockRaise > 1
}

// DefaultParams returns the standard rule parameters
func DefaultParams() Params {
	return Params{
		HighDemandScore:     7.5,
		HighDemandMinStock:  50,
		HighDemandRaise:     1.05,
		LowDemandScore:      5,
		LowDemandMinStock:   100,
		LowDemandCut:        0.92,
		CompetitorTolerance: 1.05,
		CompetitorUndercut:  0.98,
		LowStockDemandScore: 6,
		LowStockRaise:       1.08,
	}
}
