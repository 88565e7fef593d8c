package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry sourced from one supplier and resold with a
// platform margin.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Subcategory string
	Brand       string
	SKU         string

	SupplierID   uuid.UUID
	SupplierName string

	SupplierPrice    float64
	PublicPrice      float64
	Margin           float64
	MarginPercentage float64

	Stock       int
	MinStock    int
	IsAvailable bool

	Images    []string
	MainImage string
	Tags      []string

	Views  int
	Orders int

	Status   ProductStatus
	Featured bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier is a local wholesale partner fulfilling sub-orders.
type Supplier struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	WhatsApp    string
	Address     string
	City        string
	Description string

	Rating              float64
	TotalOrders         int
	SuccessfulOrders    int
	AverageResponseTime float64 // minutes

	IsActive   bool
	Categories []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is the aggregate root: one customer purchase, its item snapshots and
// its per-supplier sub-orders, treated as one consistency boundary.
type Order struct {
	ID          uuid.UUID
	OrderNumber string

	CustomerEmail string
	CustomerPhone string

	Items []OrderItem

	Subtotal    float64
	DeliveryFee float64
	Total       float64
	TotalMargin float64

	DeliveryAddress DeliveryAddress
	PaymentMethod   PaymentMethod

	Status           OrderStatus
	PaymentStatus    PaymentStatus
	PaymentReference string

	Suppliers []SupplierSubOrder

	Notes      string
	AdminNotes string

	// Version backs the storage layer's optimistic concurrency check.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a frozen snapshot of a product at order-creation time. Later
// price or name changes on the product never flow back into it.
type OrderItem struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image,omitempty"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`

	SupplierPrice float64 `json:"supplier_price"`
	PublicPrice   float64 `json:"public_price"`
	TotalPrice    float64 `json:"total_price"`

	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
}

// SupplierSubOrder is the portion of an order attributable to one supplier,
// tracked independently for notification and confirmation.
type SupplierSubOrder struct {
	SupplierID    uuid.UUID `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	SupplierPhone string    `json:"supplier_phone"`

	Items []uuid.UUID `json:"items"` // product IDs

	NotificationSent bool             `json:"notification_sent"`
	Response         SupplierResponse `json:"response"`
	ResponseTime     *time.Time       `json:"response_time,omitempty"`
}

// DeliveryAddress is the customer-entered delivery destination, stored as a
// document inside the order.
type DeliveryAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Commune      string `json:"commune,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// User is a dashboard account. Only admins authenticate against this API;
// customers order without an account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DashboardStats is the admin dashboard overview, aggregated from orders,
// products and suppliers.
type DashboardStats struct {
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
	ActiveProducts int     `json:"active_products"`
	ActiveSuppliers int    `json:"active_suppliers"`
	TotalRevenue   float64 `json:"total_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`

	TopProducts  []ProductSales `json:"top_products"`
	TopSuppliers []SupplierRank `json:"top_suppliers"`
}

// ProductSales summarizes how a product sells across all orders.
type ProductSales struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitsSold   int       `json:"units_sold"`
	Revenue     float64   `json:"revenue"`
}

// SupplierRank summarizes a supplier's standing for the dashboard.
type SupplierRank struct {
	SupplierID       uuid.UUID `json:"supplier_id"`
	Name             string    `json:"name"`
	Rating           float64   `json:"rating"`
	TotalOrders      int       `json:"total_orders"`
	SuccessfulOrders int       `json:"successful_orders"`
}
