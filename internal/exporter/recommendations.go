package exporter

import (
	"strconv"

	"pricingcli/internal/pricing"
)

// recommendationHeaders is the column order shared by the CSV and Excel exports
var recommendationHeaders = []string{
	"ProductID",
	"ProductName",
	"CurrentPrice",
	"RecommendedPrice",
	"Action",
	"ChangePct",
	"Reason",
}

// recommendationRecords converts recommendations into string records
func recommendationRecords(recommendations []pricing.Recommendation) [][]string {
	records := make([][]string, 0, len(recommendations))
	for _, reco := range recommendations {
		records = append(records, []string{
			reco.ProductID,
			reco.ProductName,
			formatPrice(reco.CurrentPrice),
			formatPrice(reco.RecommendedPrice),
			string(reco.Action),
			formatPrice(reco.ChangePct),
			reco.Reason,
		})
	}
	return records
}

// WriteRecommendationsCSV exports the recommendation list to a CSV file
func (w *CSVWriter) WriteRecommendationsCSV(filePath string, recommendations []pricing.Recommendation) error {
	return w.WriteSimpleCSV(filePath, recommendationHeaders, recommendationRecords(recommendations))
}

// formatPrice formats a monetary or percentage value with two decimals
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
