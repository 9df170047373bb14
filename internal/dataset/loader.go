package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "pricingcli/internal/errors"
)

// DateLayout is the expected layout for all date columns.
const DateLayout = "2006-01-02"

// LoadDir loads every recognized table CSV found under dir into a Store.
// A missing file only means the table stays unloaded; a present but
// malformed file is a parsing error.
func LoadDir(ctx context.Context, dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store := NewStore()

	type tableLoader struct {
		name string
		load func(*Store, *csv.Reader) (int, error)
	}

	loaders := []tableLoader{
		{TableProducts, loadProducts},
		{TableInventory, loadInventory},
		{TableDemandMetrics, loadDemandMetrics},
		{TableCompetitorPrices, loadCompetitorPrices},
		{TableCompetitors, loadCompetitors},
		{TableOrders, loadOrders},
		{TableOrderItems, loadOrderItems},
	}

	for _, tl := range loaders {
		path := filepath.Join(dir, tl.name+".csv")

		file, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.WarnContext(ctx, "table not loaded, file missing",
					slog.String("table", tl.name),
					slog.String("path", path))
				continue
			}
			return nil, apperrors.NewStorageError(
				fmt.Sprintf("failed to open table %s", tl.name), err)
		}

		count, err := tl.load(store, csv.NewReader(file))
		file.Close()
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("failed to parse table %s", tl.name), err)
		}

		store.loaded[tl.name] = count
		logger.InfoContext(ctx, "loaded table",
			slog.String("table", tl.name),
			slog.Int("records", count))
	}

	return store, nil
}

// columnIndex maps lower-cased header names to their column positions
type columnIndex struct {
	cols map[string]int
}

// indexColumns reads the header row and builds the column index
func indexColumns(reader *csv.Reader) (*columnIndex, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	return &columnIndex{cols: cols}, nil
}

// require verifies that all named columns are present
func (ci *columnIndex) require(names ...string) error {
	for _, name := range names {
		if _, ok := ci.cols[name]; !ok {
			return fmt.Errorf("could not find required column: %s", name)
		}
	}
	return nil
}

// getString returns the trimmed cell value for the named column
func (ci *columnIndex) getString(row []string, name string) string {
	idx, ok := ci.cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloat parses the named column as a float, tolerating thousands separators
func (ci *columnIndex) parseFloat(row []string, name string) float64 {
	raw := strings.ReplaceAll(ci.getString(row, name), ",", "")
	val, _ := strconv.ParseFloat(raw, 64)
	return val
}

// parseDate parses the named column as a date
func (ci *columnIndex) parseDate(row []string, name string) (time.Time, error) {
	return time.Parse(DateLayout, ci.getString(row, name))
}

// forEachRow applies fn to every data row, stopping at EOF
func forEachRow(reader *csv.Reader, fn func(row []string)) error {
	reader.FieldsPerRecord = -1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		fn(row)
	}
}

func loadProducts(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("product_id", "product_name", "current_price", "min_price", "max_price"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "product_id")
		if id == "" {
			return
		}
		store.products = append(store.products, Product{
			ID:           id,
			Name:         ci.getString(row, "product_name"),
			CategoryID:   ci.getString(row, "category_id"),
			BasePrice:    ci.parseFloat(row, "base_price"),
			CurrentPrice: ci.parseFloat(row, "current_price"),
			MinPrice:     ci.parseFloat(row, "min_price"),
			MaxPrice:     ci.parseFloat(row, "max_price"),
			BaseCost:     ci.parseFloat(row, "base_cost"),
		})
	})
	return len(store.products), err
}

func loadInventory(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("product_id", "quantity_available", "stock_status"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "product_id")
		if id == "" {
			return
		}
		store.inventory = append(store.inventory, InventoryRecord{
			ProductID:         id,
			QuantityAvailable: ci.parseFloat(row, "quantity_available"),
			ReorderPoint:      ci.parseFloat(row, "reorder_point"),
			StockStatus:       StockStatus(ci.getString(row, "stock_status")),
		})
	})
	return len(store.inventory), err
}

func loadDemandMetrics(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("product_id", "date", "demand_score"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "product_id")
		if id == "" {
			return
		}
		date, err := ci.parseDate(row, "date")
		if err != nil {
			return // skip rows with unparsable dates
		}
		store.demand = append(store.demand, DemandSnapshot{
			ProductID:      id,
			Date:           date,
			DemandScore:    ci.parseFloat(row, "demand_score"),
			ConversionRate: ci.parseFloat(row, "conversion_rate"),
			PageViews:      ci.parseFloat(row, "page_views"),
			PurchaseCount:  ci.parseFloat(row, "purchase_count"),
			Revenue:        ci.parseFloat(row, "revenue"),
		})
	})
	return len(store.demand), err
}

func loadCompetitorPrices(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("product_id", "competitor_id", "competitor_price"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "product_id")
		if id == "" {
			return
		}
		// Observation date is informational only; a missing or bad date
		// does not invalidate the price point.
		observedAt, _ := ci.parseDate(row, "date")
		store.compPrices = append(store.compPrices, CompetitorPrice{
			ProductID:    id,
			CompetitorID: ci.getString(row, "competitor_id"),
			Price:        ci.parseFloat(row, "competitor_price"),
			ObservedAt:   observedAt,
		})
	})
	return len(store.compPrices), err
}

func loadCompetitors(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("competitor_id", "competitor_name"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "competitor_id")
		if id == "" {
			return
		}
		store.competitors = append(store.competitors, Competitor{
			ID:   id,
			Name: ci.getString(row, "competitor_name"),
		})
	})
	return len(store.competitors), err
}

func loadOrders(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("order_id"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "order_id")
		if id == "" {
			return
		}
		createdAt, _ := ci.parseDate(row, "order_date")
		store.orders = append(store.orders, Order{
			ID:         id,
			CustomerID: ci.getString(row, "customer_id"),
			CreatedAt:  createdAt,
		})
	})
	return len(store.orders), err
}

func loadOrderItems(store *Store, reader *csv.Reader) (int, error) {
	ci, err := indexColumns(reader)
	if err != nil {
		return 0, err
	}
	if err := ci.require("order_id", "product_id", "quantity", "total_price"); err != nil {
		return 0, err
	}

	err = forEachRow(reader, func(row []string) {
		id := ci.getString(row, "order_id")
		if id == "" {
			return
		}
		store.orderItems = append(store.orderItems, OrderItem{
			OrderID:    id,
			ProductID:  ci.getString(row, "product_id"),
			Quantity:   ci.parseFloat(row, "quantity"),
			UnitPrice:  ci.parseFloat(row, "unit_price"),
			TotalPrice: ci.parseFloat(row, "total_price"),
		})
	})
	return len(store.orderItems), err
}
