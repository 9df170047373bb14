package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pricingcli/internal/dataset"
	"pricingcli/internal/pricing"
)

// productRevenue aggregates sold order items for one product
type productRevenue struct {
	unitsSold  float64
	revenue    float64
	orderCount int
}

// aggregateRevenue groups order items by product
func aggregateRevenue(items []dataset.OrderItem) map[string]productRevenue {
	totals := make(map[string]productRevenue)
	for _, item := range items {
		t := totals[item.ProductID]
		t.unitsSold += item.Quantity
		t.revenue += item.TotalPrice
		t.orderCount++
		totals[item.ProductID] = t
	}
	return totals
}

// revenueAnalysis prints per-product units sold, revenue, gross profit and
// margin, with portfolio totals. Products with no sales show zeros.
func (r *Runner) revenueAnalysis(ctx context.Context, _ time.Time) error {
	products, err := r.store.Products()
	if err != nil {
		return err
	}
	items, err := r.store.OrderItems()
	if err != nil {
		return err
	}

	totals := aggregateRevenue(items)

	type row struct {
		product   dataset.Product
		rev       productRevenue
		profit    float64
		marginPct float64
	}

	rows := make([]row, 0, len(products))
	var totalRevenue, totalProfit, marginSum float64
	for _, product := range products {
		rev := totals[product.ID]
		cost := product.BaseCost * rev.unitsSold
		profit := rev.revenue - cost

		marginPct := 0.0
		if rev.revenue > 0 {
			marginPct = pricing.Round2(profit / rev.revenue * 100)
		}

		rows = append(rows, row{product: product, rev: rev, profit: profit, marginPct: marginPct})
		totalRevenue += rev.revenue
		totalProfit += profit
		marginSum += marginPct
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].rev.revenue > rows[j].rev.revenue
	})

	r.banner("REVENUE ANALYSIS")
	fmt.Fprintf(r.out, "%-28s %10s %14s %14s %10s\n",
		"Product", "Units", "Revenue", "Profit", "Margin%")
	for _, row := range rows {
		fmt.Fprintf(r.out, "%-28s %10.0f %14.2f %14.2f %10.2f\n",
			row.product.Name,
			row.rev.unitsSold,
			row.rev.revenue,
			row.profit,
			row.marginPct)
	}

	fmt.Fprintf(r.out, "\nTotal Revenue: $%.2f\n", totalRevenue)
	fmt.Fprintf(r.out, "Total Profit: $%.2f\n", totalProfit)
	if len(rows) > 0 {
		fmt.Fprintf(r.out, "Average Margin: %.2f%%\n", marginSum/float64(len(rows)))
	}

	return nil
}
