package dataset

import (
	"sort"

	apperrors "pricingcli/internal/errors"
)

// Table names recognized by the loader.
const (
	TableProducts         = "products"
	TableInventory        = "inventory"
	TableDemandMetrics    = "demand_metrics"
	TableCompetitorPrices = "competitor_prices"
	TableCompetitors      = "competitors"
	TableOrders           = "orders"
	TableOrderItems       = "order_items"
)

// Store holds the full set of loaded tables for one analysis run.
// A table that had no CSV file is simply absent; accessors return a
// not-found error so the failure surfaces at use time, not load time.
type Store struct {
	products    []Product
	inventory   []InventoryRecord
	demand      []DemandSnapshot
	compPrices  []CompetitorPrice
	competitors []Competitor
	orders      []Order
	orderItems  []OrderItem

	loaded map[string]int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{loaded: make(map[string]int)}
}

// IsLoaded reports whether the named table was loaded
func (s *Store) IsLoaded(table string) bool {
	_, ok := s.loaded[table]
	return ok
}

// RecordCount returns the number of records loaded for the named table
func (s *Store) RecordCount(table string) int {
	return s.loaded[table]
}

// LoadedTables returns the names of all loaded tables in sorted order
func (s *Store) LoadedTables() []string {
	tables := make([]string, 0, len(s.loaded))
	for table := range s.loaded {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// Products returns the products table
func (s *Store) Products() ([]Product, error) {
	if !s.IsLoaded(TableProducts) {
		return nil, apperrors.NewNotFoundError("table " + TableProducts)
	}
	return s.products, nil
}

// Inventory returns the inventory table
func (s *Store) Inventory() ([]InventoryRecord, error) {
	if !s.IsLoaded(TableInventory) {
		return nil, apperrors.NewNotFoundError("table " + TableInventory)
	}
	return s.inventory, nil
}

// DemandMetrics returns the demand metrics table
func (s *Store) DemandMetrics() ([]DemandSnapshot, error) {
	if !s.IsLoaded(TableDemandMetrics) {
		return nil, apperrors.NewNotFoundError("table " + TableDemandMetrics)
	}
	return s.demand, nil
}

// CompetitorPrices returns the competitor price observations table
func (s *Store) CompetitorPrices() ([]CompetitorPrice, error) {
	if !s.IsLoaded(TableCompetitorPrices) {
		return nil, apperrors.NewNotFoundError("table " + TableCompetitorPrices)
	}
	return s.compPrices, nil
}

// Competitors returns the competitors table
func (s *Store) Competitors() ([]Competitor, error) {
	if !s.IsLoaded(TableCompetitors) {
		return nil, apperrors.NewNotFoundError("table " + TableCompetitors)
	}
	return s.competitors, nil
}

// Orders returns the orders table
func (s *Store) Orders() ([]Order, error) {
	if !s.IsLoaded(TableOrders) {
		return nil, apperrors.NewNotFoundError("table " + TableOrders)
	}
	return s.orders, nil
}

// OrderItems returns the order items table
func (s *Store) OrderItems() ([]OrderItem, error) {
	if !s.IsLoaded(TableOrderItems) {
		return nil, apperrors.NewNotFoundError("table " + TableOrderItems)
	}
	return s.orderItems, nil
}
