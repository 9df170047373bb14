package reports

import (
	"context"
	"fmt"
	"time"

	"pricingcli/internal/pricing"
)

// pricingOverview prints one row per product with its current price, stock
// position, latest-date demand figures and price drift from the base price.
func (r *Runner) pricingOverview(ctx context.Context, latest time.Time) error {
	products, err := r.store.Products()
	if err != nil {
		return err
	}
	inventory, err := r.store.Inventory()
	if err != nil {
		return err
	}
	demand, err := r.store.DemandMetrics()
	if err != nil {
		return err
	}

	views := pricing.BuildViews(products, inventory, demand, nil, latest)

	r.banner("PRODUCT PRICING OVERVIEW")
	fmt.Fprintf(r.out, "%-28s %12s %10s %14s %8s %8s %10s\n",
		"Product", "Price", "Qty", "Status", "Demand", "Conv", "Change%")

	for _, v := range views {
		changePct := 0.0
		hasChange := v.Product.BasePrice > 0
		if hasChange {
			changePct = pricing.Round2(
				(v.Product.CurrentPrice - v.Product.BasePrice) / v.Product.BasePrice * 100)
		}

		qty := "-"
		status := "-"
		if v.HasInventory {
			qty = fmt.Sprintf("%.0f", v.QuantityAvailable)
			status = string(v.StockStatus)
		}

		fmt.Fprintf(r.out, "%-28s %12.2f %10s %14s %8s %8s %10s\n",
			v.Product.Name,
			v.Product.CurrentPrice,
			qty,
			status,
			fmtFloat(v.DemandScore, v.HasDemand),
			fmtFloat(v.ConversionRate, v.HasDemand),
			fmtFloat(changePct, hasChange))
	}

	return nil
}
