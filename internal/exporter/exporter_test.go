package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pricingcli/internal/dataset"
	"pricingcli/internal/pricing"
)

var testRecommendations = []pricing.Recommendation{
	{
		ProductID:        "P1",
		ProductName:      "Gaming Keyboard",
		CurrentPrice:     100,
		RecommendedPrice: 105,
		Action:           pricing.ActionIncrease,
		ChangePct:        5,
		Reason:           "High demand (8.0) with adequate stock",
	},
	{
		ProductID:        "P2",
		ProductName:      "Desk Lamp",
		CurrentPrice:     50,
		RecommendedPrice: 46,
		Action:           pricing.ActionDecrease,
		ChangePct:        -8,
		Reason:           "Low demand (4.0) with excess inventory",
	},
}

func TestWriteRecommendationsCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteRecommendationsCSV("recommendations.csv", testRecommendations))

	data, err := os.ReadFile(filepath.Join(dir, "recommendations.csv"))
	require.NoError(t, err)

	t.Run("has UTF-8 BOM", func(t *testing.T) {
		require.GreaterOrEqual(t, len(data), 3)
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	})

	content := string(data[3:])

	t.Run("header and rows", func(t *testing.T) {
		assert.Contains(t, content, "ProductID,ProductName,CurrentPrice,RecommendedPrice,Action,ChangePct,Reason")
		assert.Contains(t, content, "P1,Gaming Keyboard,100.00,105.00,INCREASE,5.00,High demand (8.0) with adequate stock")
		assert.Contains(t, content, "P2,Desk Lamp,50.00,46.00,DECREASE,-8.00,Low demand (4.0) with excess inventory")
	})
}

func TestWriteRecommendationsCSVAbsolutePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reco.csv")
	writer := NewCSVWriter("ignored-base")

	require.NoError(t, writer.WriteRecommendationsCSV(path, nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	views := []pricing.ProductView{
		{
			Product: dataset.Product{
				ID: "P1", Name: "Gaming Keyboard",
				CurrentPrice: 100, MinPrice: 80, MaxPrice: 120,
			},
			QuantityAvailable: 60,
			StockStatus:       dataset.StockStatusInStock,
			HasInventory:      true,
			DemandScore:       8.0,
			ConversionRate:    0.06,
			HasDemand:         true,
		},
		{
			// Unmatched joins leave the optional columns empty
			Product: dataset.Product{ID: "P3", Name: "Phone Stand", CurrentPrice: 12},
		},
	}

	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	require.NoError(t, WriteWorkbook(path, views, testRecommendations))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	t.Run("recommendations sheet", func(t *testing.T) {
		name, err := f.GetCellValue("Recommendations", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Gaming Keyboard", name)

		action, err := f.GetCellValue("Recommendations", "E3")
		require.NoError(t, err)
		assert.Equal(t, "DECREASE", action)
	})

	t.Run("overview sheet", func(t *testing.T) {
		status, err := f.GetCellValue("Overview", "G2")
		require.NoError(t, err)
		assert.Equal(t, "in_stock", status)

		missingDemand, err := f.GetCellValue("Overview", "H3")
		require.NoError(t, err)
		assert.Empty(t, missingDemand)
	})
}
