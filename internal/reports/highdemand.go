package reports

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"pricingcli/internal/dataset"
	"pricingcli/internal/pricing"
)

// recentDemand holds trailing-window demand averages for one product
type recentDemand struct {
	demandScore    float64
	conversionRate float64
	revenue        float64
}

// averageRecentDemand computes per-product mean demand figures over the
// trailing window ending at the global latest date, inclusive.
func averageRecentDemand(snapshots []dataset.DemandSnapshot, latest time.Time, days int) map[string]recentDemand {
	cutoff := latest.AddDate(0, 0, -(days - 1))

	sums := make(map[string]recentDemand)
	counts := make(map[string]int)
	for _, snap := range snapshots {
		if snap.Date.Before(cutoff) {
			continue
		}
		s := sums[snap.ProductID]
		s.demandScore += snap.DemandScore
		s.conversionRate += snap.ConversionRate
		s.revenue += snap.Revenue
		sums[snap.ProductID] = s
		counts[snap.ProductID]++
	}

	for id, s := range sums {
		n := float64(counts[id])
		s.demandScore /= n
		s.conversionRate /= n
		// revenue stays a sum over the window
		sums[id] = s
	}
	return sums
}

// highDemandProducts lists products whose trailing three-day mean demand
// exceeds the high-demand threshold, with the price increase each could bear.
func (r *Runner) highDemandProducts(ctx context.Context, latest time.Time) error {
	products, err := r.store.Products()
	if err != nil {
		return err
	}
	demand, err := r.store.DemandMetrics()
	if err != nil {
		return err
	}
	inventory, err := r.store.Inventory()
	if err != nil {
		return err
	}

	recent := averageRecentDemand(demand, latest, 3)

	qtyByProduct := make(map[string]float64, len(inventory))
	for _, inv := range inventory {
		qtyByProduct[inv.ProductID] = inv.QuantityAvailable
	}

	type row struct {
		product     dataset.Product
		demand      recentDemand
		qty         float64
		recommended float64
	}

	var rows []row
	for _, product := range products {
		rd, ok := recent[product.ID]
		if !ok || rd.demandScore <= r.params.HighDemandScore {
			continue
		}
		rows = append(rows, row{
			product: product,
			demand:  rd,
			qty:     qtyByProduct[product.ID],
			recommended: pricing.Round2(math.Min(
				product.CurrentPrice*r.params.HighDemandRaise, product.MaxPrice)),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].demand.demandScore > rows[j].demand.demandScore
	})

	r.banner("HIGH DEMAND PRODUCTS (Potential for Price Increase)")
	if len(rows) == 0 {
		fmt.Fprintln(r.out, "None")
		return nil
	}

	fmt.Fprintf(r.out, "%-28s %12s %12s %10s %8s %8s\n",
		"Product", "Price", "Suggested", "Qty", "Demand", "Conv")
	for _, row := range rows {
		fmt.Fprintf(r.out, "%-28s %12.2f %12.2f %10.0f %8.2f %8.2f\n",
			row.product.Name,
			row.product.CurrentPrice,
			row.recommended,
			row.qty,
			row.demand.demandScore,
			row.demand.conversionRate)
	}

	return nil
}
