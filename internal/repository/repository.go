package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fashop/marketplace-api/internal/domain"
)

// ProductFilter narrows product listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category    string
	Subcategory string
	SupplierID  *uuid.UUID
	Status      domain.ProductStatus
	MinPrice    *float64
	MaxPrice    *float64
	InStock     bool
	Featured    bool
	Search      string
	// PublicOnly restricts results to active, available products (storefront view).
	PublicOnly bool

	Page  int
	Limit int
}

// SupplierFilter narrows supplier listings.
type SupplierFilter struct {
	Search   string
	IsActive *bool
	Category string
	City     string

	Page  int
	Limit int
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status        domain.OrderStatus
	PaymentStatus domain.PaymentStatus
	SupplierID    *uuid.UUID
	Search        string
	DateFrom      *time.Time
	DateTo        *time.Time

	Page  int
	Limit int
}

// ProductRepository persists the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int, error)

	// DecrementStock atomically reserves qty units, guarded by stock >= qty
	// at the storage layer. Fails with ErrInsufficientStock when the guard
	// does not hold; never leaves stock negative.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementOrders(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository persists suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	List(ctx context.Context, filter SupplierFilter) ([]*domain.Supplier, int, error)
}

// OrderRepository persists order aggregates. The whole aggregate (items,
// sub-orders, address) is written as one document in a single statement.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)

	// Update writes the aggregate back guarded by its version; a concurrent
	// writer surfaces as ErrStale and the caller re-reads and retries.
	Update(ctx context.Context, order *domain.Order) error

	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, int, error)
}

// UserRepository persists dashboard accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// StatsRepository aggregates dashboard figures across collections.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
}

// Repositories bundles every repository behind one injection point.
type Repositories struct {
	Product  ProductRepository
	Supplier SupplierRepository
	Order    OrderRepository
	User     UserRepository
	Stats    StatsRepository
}
