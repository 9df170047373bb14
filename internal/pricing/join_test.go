package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricingcli/internal/dataset"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestDemandDate(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		_, ok := LatestDemandDate(nil)
		assert.False(t, ok)
	})

	t.Run("returns global maximum", func(t *testing.T) {
		snapshots := []dataset.DemandSnapshot{
			{ProductID: "P1", Date: day(3)},
			{ProductID: "P2", Date: day(9)},
			{ProductID: "P1", Date: day(7)},
		}

		latest, ok := LatestDemandDate(snapshots)
		require.True(t, ok)
		assert.Equal(t, day(9), latest)
	})
}

func TestBuildViews(t *testing.T) {
	products := []dataset.Product{
		{ID: "P1", Name: "Alpha", CurrentPrice: 100},
		{ID: "P2", Name: "Beta", CurrentPrice: 50},
		{ID: "P3", Name: "Gamma", CurrentPrice: 75},
	}
	inventory := []dataset.InventoryRecord{
		{ProductID: "P1", QuantityAvailable: 60, StockStatus: dataset.StockStatusInStock},
		{ProductID: "P2", QuantityAvailable: 5, StockStatus: dataset.StockStatusLowStock},
	}
	demand := []dataset.DemandSnapshot{
		{ProductID: "P1", Date: day(9), DemandScore: 8.2, ConversionRate: 0.05},
		{ProductID: "P1", Date: day(8), DemandScore: 3.0},
		// P2's newest snapshot is older than the global latest date
		{ProductID: "P2", Date: day(8), DemandScore: 9.9},
	}
	compPrices := []dataset.CompetitorPrice{
		{ProductID: "P1", CompetitorID: "C1", Price: 90},
		{ProductID: "P1", CompetitorID: "C2", Price: 110},
		{ProductID: "P2", CompetitorID: "C1", Price: 45},
	}

	views := BuildViews(products, inventory, demand, compPrices, day(9))
	require.Len(t, views, 3)

	t.Run("fully joined product", func(t *testing.T) {
		v := views[0]
		assert.Equal(t, "P1", v.Product.ID)
		assert.True(t, v.HasInventory)
		assert.Equal(t, 60.0, v.QuantityAvailable)
		assert.True(t, v.HasDemand)
		assert.Equal(t, 8.2, v.DemandScore)
		assert.Equal(t, 0.05, v.ConversionRate)
		assert.True(t, v.HasCompetitorAvg)
		assert.Equal(t, 100.0, v.AvgCompetitorPrice)
	})

	t.Run("stale demand is not carried forward", func(t *testing.T) {
		v := views[1]
		assert.Equal(t, "P2", v.Product.ID)
		assert.True(t, v.HasInventory)
		assert.False(t, v.HasDemand, "snapshot from an earlier date must not count as latest")
		assert.True(t, v.HasCompetitorAvg)
		assert.Equal(t, 45.0, v.AvgCompetitorPrice)
	})

	t.Run("unmatched joins stay empty", func(t *testing.T) {
		v := views[2]
		assert.Equal(t, "P3", v.Product.ID)
		assert.False(t, v.HasInventory)
		assert.False(t, v.HasDemand)
		assert.False(t, v.HasCompetitorAvg)
	})
}

func TestBuildViewsKeepsCatalogOrder(t *testing.T) {
	products := []dataset.Product{
		{ID: "Z9"}, {ID: "A1"}, {ID: "M5"},
	}

	views := BuildViews(products, nil, nil, nil, day(1))
	require.Len(t, views, 3)
	assert.Equal(t, "Z9", views[0].Product.ID)
	assert.Equal(t, "A1", views[1].Product.ID)
	assert.Equal(t, "M5", views[2].Product.ID)
}
