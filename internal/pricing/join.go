package pricing

import (
	"time"

	"pricingcli/internal/dataset"
)

// LatestDemandDate returns the single global latest date across the whole
// demand table. Every stage that selects "latest" demand figures must use
// this one value so report sections stay consistent with each other.
func LatestDemandDate(snapshots []dataset.DemandSnapshot) (time.Time, bool) {
	if len(snapshots) == 0 {
		return time.Time{}, false
	}

	latest := snapshots[0].Date
	for _, snap := range snapshots[1:] {
		if snap.Date.After(latest) {
			latest = snap.Date
		}
	}
	return latest, true
}

// BuildViews left-joins the product catalog with inventory, the latest-date
// demand snapshot and the all-time average competitor price, keyed by
// product ID. Products keep their catalog order. A product with no demand
// snapshot on the latest date carries no demand figures at all.
func BuildViews(
	products []dataset.Product,
	inventory []dataset.InventoryRecord,
	demand []dataset.DemandSnapshot,
	compPrices []dataset.CompetitorPrice,
	latest time.Time,
) []ProductView {
	invByProduct := make(map[string]dataset.InventoryRecord, len(inventory))
	for _, inv := range inventory {
		invByProduct[inv.ProductID] = inv
	}

	demandByProduct := make(map[string]dataset.DemandSnapshot)
	for _, snap := range demand {
		if snap.Date.Equal(latest) {
			demandByProduct[snap.ProductID] = snap
		}
	}

	// All-time average competitor price per product. Deliberately not
	// windowed to the latest date; see the rule engine notes.
	compSum := make(map[string]float64)
	compCount := make(map[string]int)
	for _, cp := range compPrices {
		compSum[cp.ProductID] += cp.Price
		compCount[cp.ProductID]++
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		view := ProductView{Product: product}

		if inv, ok := invByProduct[product.ID]; ok {
			view.QuantityAvailable = inv.QuantityAvailable
			view.StockStatus = inv.StockStatus
			view.HasInventory = true
		}

		if snap, ok := demandByProduct[product.ID]; ok {
			view.DemandScore = snap.DemandScore
			view.ConversionRate = snap.ConversionRate
			view.HasDemand = true
		}

		if count := compCount[product.ID]; count > 0 {
			view.AvgCompetitorPrice = compSum[product.ID] / float64(count)
			view.HasCompetitorAvg = true
		}

		views = append(views, view)
	}

	return views
}
