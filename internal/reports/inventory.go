package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"pricingcli/internal/dataset"
)

// DaysOfStockSentinel stands in for "days of stock" when a product has no
// recorded sales velocity, instead of a division-by-zero infinity.
const DaysOfStockSentinel = 999

// salesVelocity computes per-product mean daily purchase counts over the
// trailing window ending at the global latest date.
func salesVelocity(snapshots []dataset.DemandSnapshot, latest time.Time, days int) map[string]float64 {
	cutoff := latest.AddDate(0, 0, -days)

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, snap := range snapshots {
		if snap.Date.Before(cutoff) {
			continue
		}
		sums[snap.ProductID] += snap.PurchaseCount
		counts[snap.ProductID]++
	}

	velocity := make(map[string]float64, len(sums))
	for id, sum := range sums {
		velocity[id] = sum / float64(counts[id])
	}
	return velocity
}

// daysOfStock converts quantity and daily sales velocity to days of cover
func daysOfStock(qty, velocity float64) float64 {
	if velocity <= 0 {
		return DaysOfStockSentinel
	}
	return math.Round(qty/velocity*10) / 10
}

// inventoryAlerts flags products at or below their reorder point and slow
// movers sitting on more than 30 days of stock.
func (r *Runner) inventoryAlerts(ctx context.Context, latest time.Time) error {
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

	velocity := salesVelocity(demand, latest, 7)

	invByProduct := make(map[string]dataset.InventoryRecord, len(inventory))
	for _, inv := range inventory {
		invByProduct[inv.ProductID] = inv
	}

	type row struct {
		product dataset.Product
		inv     dataset.InventoryRecord
		days    float64
	}

	var lowStock, slowMoving []row
	for _, product := range products {
		inv, ok := invByProduct[product.ID]
		if !ok {
			continue
		}
		days := daysOfStock(inv.QuantityAvailable, velocity[product.ID])

		if inv.QuantityAvailable <= inv.ReorderPoint {
			lowStock = append(lowStock, row{product, inv, days})
		}
		if days > 30 {
			slowMoving = append(slowMoving, row{product, inv, days})
		}
	}

	r.banner("INVENTORY ALERTS")

	fmt.Fprintln(r.out, "\nLOW STOCK (Below Reorder Point):")
	if len(lowStock) == 0 {
		fmt.Fprintln(r.out, "None")
	} else {
		fmt.Fprintf(r.out, "%-28s %10s %14s %12s\n", "Product", "Qty", "ReorderPoint", "DaysOfStock")
		for _, row := range lowStock {
			fmt.Fprintf(r.out, "%-28s %10.0f %14.0f %12.1f\n",
				row.product.Name, row.inv.QuantityAvailable, row.inv.ReorderPoint, row.days)
		}
	}

	fmt.Fprintln(r.out, "\nSLOW MOVING (>30 days of stock):")
	if len(slowMoving) == 0 {
		fmt.Fprintln(r.out, "None")
	} else {
		fmt.Fprintf(r.out, "%-28s %10s %12s %12s\n", "Product", "Qty", "Price", "DaysOfStock")
		for _, row := range slowMoving {
			fmt.Fprintf(r.out, "%-28s %10.0f %12.2f %12.1f\n",
				row.product.Name, row.inv.QuantityAvailable, row.product.CurrentPrice, row.days)
		}
	}

	return nil
}
