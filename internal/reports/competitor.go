package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"pricingcli/internal/dataset"
	"pricingcli/internal/pricing"
)

// competitorStats aggregates all observed competitor prices for one product
type competitorStats struct {
	avg   float64
	min   float64
	max   float64
	count int
}

// aggregateCompetitorPrices groups price observations by product
func aggregateCompetitorPrices(prices []dataset.CompetitorPrice) map[string]competitorStats {
	stats := make(map[string]competitorStats)
	for _, cp := range prices {
		s, ok := stats[cp.ProductID]
		if !ok {
			s = competitorStats{min: math.Inf(1), max: math.Inf(-1)}
		}
		s.avg += cp.Price // running sum, divided below
		s.min = math.Min(s.min, cp.Price)
		s.max = math.Max(s.max, cp.Price)
		s.count++
		stats[cp.ProductID] = s
	}

	for id, s := range stats {
		s.avg /= float64(s.count)
		stats[id] = s
	}
	return stats
}

// competitorComparison prints the per-product price gap against the
// all-time average competitor price, with a Lower/Higher/Equal position.
func (r *Runner) competitorComparison(ctx context.Context, _ time.Time) error {
	products, err := r.store.Products()
	if err != nil {
		return err
	}
	compPrices, err := r.store.CompetitorPrices()
	if err != nil {
		return err
	}

	stats := aggregateCompetitorPrices(compPrices)

	r.banner("COMPETITOR PRICE COMPARISON")
	fmt.Fprintf(r.out, "%-28s %12s %12s %12s %12s %10s %10s\n",
		"Product", "Price", "CompAvg", "CompMin", "CompMax", "Gap%", "Position")

	for _, product := range products {
		s, ok := stats[product.ID]
		if !ok {
			fmt.Fprintf(r.out, "%-28s %12.2f %12s %12s %12s %10s %10s\n",
				product.Name, product.CurrentPrice, "-", "-", "-", "-", "-")
			continue
		}

		gap := pricing.Round2(product.CurrentPrice - s.avg)
		gapPct := pricing.Round2(gap / s.avg * 100)

		position := "Equal"
		switch {
		case gapPct < 0:
			position = "Lower"
		case gapPct > 0:
			position = "Higher"
		}

		fmt.Fprintf(r.out, "%-28s %12.2f %12.2f %12.2f %12.2f %10.2f %10s\n",
			product.Name, product.CurrentPrice, s.avg, s.min, s.max, gapPct, position)
	}

	return nil
}
