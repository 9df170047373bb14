package reports

import (
	"context"
	"fmt"
	"time"

	"pricingcli/internal/pricing"
)

// pricingRecommendations runs the rule engine over the joined product views
// and prints the resulting price actions, largest increase first.
func (r *Runner) pricingRecommendations(ctx context.Context, latest time.Time) error {
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
	compPrices, err := r.store.CompetitorPrices()
	if err != nil {
		return err
	}

	views := pricing.BuildViews(products, inventory, demand, compPrices, latest)
	recommendations := r.engine.Evaluate(ctx, views)

	r.banner("DYNAMIC PRICING RECOMMENDATIONS")
	if len(recommendations) == 0 {
		fmt.Fprintln(r.out, "No pricing changes recommended at this time.")
		return nil
	}

	fmt.Fprintf(r.out, "%-28s %10s %12s %10s %9s  %s\n",
		"Product", "Price", "Recommended", "Action", "Change%", "Reason")
	for _, reco := range recommendations {
		fmt.Fprintf(r.out, "%-28s %10.2f %12.2f %10s %9.2f  %s\n",
			reco.ProductName,
			reco.CurrentPrice,
			reco.RecommendedPrice,
			reco.Action,
			reco.ChangePct,
			reco.Reason)
	}

	return nil
}
