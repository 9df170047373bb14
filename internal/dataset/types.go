package dataset

import (
	"time"
)

// StockStatus is the coarse inventory state reported by the warehouse feed.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// Product represents a catalog entry with its configured price bounds
type Product struct {
	ID           string  `json:"product_id"`
	Name         string  `json:"product_name"`
	CategoryID   string  `json:"category_id"`
	BasePrice    float64 `json:"base_price"`
	CurrentPrice float64 `json:"current_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
	BaseCost     float64 `json:"base_cost"`
}

// IsValid checks if the product data is usable for analysis
func (p Product) IsValid() bool {
	return p.ID != "" && p.CurrentPrice > 0 && p.MinPrice >= 0 &&
		p.MaxPrice >= p.MinPrice
}

// InventoryRecord represents the current stock position for a product
type InventoryRecord struct {
	ProductID         string      `json:"product_id"`
	QuantityAvailable float64     `json:"quantity_available"`
	ReorderPoint      float64     `json:"reorder_point"`
	StockStatus       StockStatus `json:"stock_status"`
}

// DemandSnapshot represents one day's demand observations for a product
type DemandSnapshot struct {
	ProductID      string    `json:"product_id"`
	Date           time.Time `json:"date"`
	DemandScore    float64   `json:"demand_score"`
	ConversionRate float64   `json:"conversion_rate"`
	PageViews      float64   `json:"page_views"`
	PurchaseCount  float64   `json:"purchase_count"`
	Revenue        float64   `json:"revenue"`
}

// CompetitorPrice represents a single observed competitor price point
type CompetitorPrice struct {
	ProductID    string    `json:"product_id"`
	CompetitorID string    `json:"competitor_id"`
	Price        float64   `json:"competitor_price"`
	ObservedAt   time.Time `json:"observed_at"`
}

// Competitor represents a tracked competitor
type Competitor struct {
	ID   string `json:"competitor_id"`
	Name string `json:"competitor_name"`
}

// Order represents an order header
type Order struct {
	ID         string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"order_date"`
}

// OrderItem represents a sold line item
type OrderItem struct {
	OrderID    string  `json:"order_id"`
	ProductID  string  `json:"product_id"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}
