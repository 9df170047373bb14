package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pricingcli/internal/pricing"
)

// WriteWorkbook exports the joined product overview and the recommendation
// list as a two-sheet Excel workbook.
func WriteWorkbook(outputPath string, views []pricing.ProductView, recommendations []pricing.Recommendation) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const recoSheet = "Recommendations"
	if err := f.SetSheetName("Sheet1", recoSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeRows(f, recoSheet, recommendationHeaders, recommendationRows(recommendations)); err != nil {
		return fmt.Errorf("write recommendations sheet: %w", err)
	}

	const overviewSheet = "Overview"
	if _, err := f.NewSheet(overviewSheet); err != nil {
		return fmt.Errorf("create overview sheet: %w", err)
	}

	overviewHeaders := []string{
		"ProductID", "ProductName", "CurrentPrice", "MinPrice", "MaxPrice",
		"QuantityAvailable", "StockStatus", "DemandScore", "ConversionRate",
		"AvgCompetitorPrice",
	}
	if err := writeRows(f, overviewSheet, overviewHeaders, overviewRows(views)); err != nil {
		return fmt.Errorf("write overview sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

// writeRows writes a header row followed by data rows to the named sheet
func writeRows(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// recommendationRows converts recommendations to workbook rows
func recommendationRows(recommendations []pricing.Recommendation) [][]interface{} {
	rows := make([][]interface{}, 0, len(recommendations))
	for _, reco := range recommendations {
		rows = append(rows, []interface{}{
			reco.ProductID,
			reco.ProductName,
			reco.CurrentPrice,
			reco.RecommendedPrice,
			string(reco.Action),
			reco.ChangePct,
			reco.Reason,
		})
	}
	return rows
}

// overviewRows converts joined product views to workbook rows. Fields from
// unmatched joins are left empty rather than written as zeros.
func overviewRows(views []pricing.ProductView) [][]interface{} {
	rows := make([][]interface{}, 0, len(views))
	for _, v := range views {
		row := []interface{}{
			v.Product.ID,
			v.Product.Name,
			v.Product.CurrentPrice,
			v.Product.MinPrice,
			v.Product.MaxPrice,
		}

		if v.HasInventory {
			row = append(row, v.QuantityAvailable, string(v.StockStatus))
		} else {
			row = append(row, nil, nil)
		}
		if v.HasDemand {
			row = append(row, v.DemandScore, v.ConversionRate)
		} else {
			row = append(row, nil, nil)
		}
		if v.HasCompetitorAvg {
			row = append(row, v.AvgCompetitorPrice)
		} else {
			row = append(row, nil)
		}

		rows = append(rows, row)
	}
	return rows
}
