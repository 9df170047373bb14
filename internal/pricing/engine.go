package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"pricingcli/internal/dataset"
)

// Engine evaluates the ordered pricing rule set against joined product views.
//
// Rules are strictly prioritized: for each product the rules are tried top
// to bottom and the first match wins, so at most one recommendation is
// emitted per product. The competitor rule compares against the all-time
// average competitor price while the demand rules use the latest single-day
// snapshot; the time-window mismatch is inherited behavior, kept as-is.
type Engine struct {
	params Params
	logger *slog.Logger
}

// NewEngine creates a rule engine with the given parameters
func NewEngine(params Params, logger *slog.Logger) (*Engine, error) {
	if !params.IsValid() {
		return nil, fmt.Errorf("invalid rule parameters: %+v", params)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		params: params,
		logger: logger,
	}, nil
}

// rule pairs a match predicate with a recommendation builder. Modeling the
// priority policy as an ordered list keeps "first match wins" explicit.
type rule struct {
	name    string
	matches func(ProductView) bool
	build   func(ProductView) Recommendation
}

// rules returns the rule list in priority order
func (e *Engine) rules() []rule {
	p := e.params

	return []rule{
		{
			name: "high_demand_adequate_stock",
			matches: func(v ProductView) bool {
				return v.HasDemand && v.DemandScore > p.HighDemandScore &&
					v.QuantityAvailable > p.HighDemandMinStock
			},
			build: func(v ProductView) Recommendation {
				price := math.Min(v.Product.CurrentPrice*p.HighDemandRaise, v.Product.MaxPrice)
				return e.recommendation(v, price, ActionIncrease,
					fmt.Sprintf("High demand (%.1f) with adequate stock", v.DemandScore))
			},
		},
		{
			name: "low_demand_excess_stock",
			matches: func(v ProductView) bool {
				return v.HasDemand && v.DemandScore < p.LowDemandScore &&
					v.QuantityAvailable > p.LowDemandMinStock
			},
			build: func(v ProductView) Recommendation {
				price := math.Max(v.Product.CurrentPrice*p.LowDemandCut, v.Product.MinPrice)
				return e.recommendation(v, price, ActionDecrease,
					fmt.Sprintf("Low demand (%.1f) with excess inventory", v.DemandScore))
			},
		},
		{
			name: "above_competitor_average",
			matches: func(v ProductView) bool {
				return v.HasCompetitorAvg &&
					v.Product.CurrentPrice > v.AvgCompetitorPrice*p.CompetitorTolerance
			},
			build: func(v ProductView) Recommendation {
				price := math.Max(v.AvgCompetitorPrice*p.CompetitorUndercut, v.Product.MinPrice)
				return e.recommendation(v, price, ActionDecrease,
					fmt.Sprintf("Price above competitors ($%.2f)", v.AvgCompetitorPrice))
			},
		},
		{
			name: "low_stock_sustained_demand",
			matches: func(v ProductView) bool {
				return v.HasInventory && v.StockStatus == dataset.StockStatusLowStock &&
					v.HasDemand && v.DemandScore > p.LowStockDemandScore
			},
			build: func(v ProductView) Recommendation {
				price := math.Min(v.Product.CurrentPrice*p.LowStockRaise, v.Product.MaxPrice)
				return e.recommendation(v, price, ActionIncrease,
					"Low stock with sustained demand")
			},
		},
	}
}

// Evaluate runs the rule set over every view and returns the emitted
// recommendations sorted by change percentage, largest increase first.
func (e *Engine) Evaluate(ctx context.Context, views []ProductView) []Recommendation {
	rules := e.rules()

	var recommendations []Recommendation
	for _, view := range views {
		// Products with no demand snapshot on the latest date are
		// excluded from evaluation entirely.
		if !view.HasDemand {
			continue
		}

		for _, r := range rules {
			if !r.matches(view) {
				continue
			}

			reco := r.build(view)
			e.logger.DebugContext(ctx, "rule matched",
				slog.String("rule", r.name),
				slog.String("product_id", view.Product.ID),
				slog.Float64("recommended_price", reco.RecommendedPrice))

			recommendations = append(recommendations, reco)
			break // first match wins
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ChangePct > recommendations[j].ChangePct
	})

	e.logger.InfoContext(ctx, "rule evaluation completed",
		slog.Int("products", len(views)),
		slog.Int("recommendations", len(recommendations)))

	return recommendations
}

// recommendation assembles a Recommendation, rounding prices and the change
// percentage to two decimals. The price passed in is already clamped to the
// product's [min_price, max_price] bounds by the rule builders.
func (e *Engine) recommendation(v ProductView, price float64, action Action, reason string) Recommendation {
	changePct := 0.0
	if v.Product.CurrentPrice != 0 {
		changePct = (price - v.Product.CurrentPrice) / v.Product.CurrentPrice * 100
	}

	return Recommendation{
		ProductID:        v.Product.ID,
		ProductName:      v.Product.Name,
		CurrentPrice:     v.Product.CurrentPrice,
		RecommendedPrice: Round2(price),
		Action:           action,
		ChangePct:        Round2(changePct),
		Reason:           reason,
	}
}

// Round2 rounds a value to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
