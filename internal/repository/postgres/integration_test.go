//go:build integration

package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

// setupDatabase starts a throwaway Postgres container, applies the schema and
// returns wired repositories.
func setupDatabase(t *testing.T) *repository.Repositories {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "fashop",
				"POSTGRES_PASSWORD": "fashop",
				"POSTGRES_DB":       "fashop_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewConnection(config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "fashop",
		Password: "fashop",
		DBName:   "fashop_test",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../../migrations/001_schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return NewRepositories(db, zap.NewNop())
}

func seedSupplierAndProduct(t *testing.T, repos *repository.Repositories, stock int) (*domain.Supplier, *domain.Product) {
	t.Helper()
	ctx := context.Background()

	supplier := &domain.Supplier{
		ID:       uuid.New(),
		Name:     "Alpha Textiles",
		Phone:    "+224620000001",
		City:     "Conakry",
		IsActive: true,
	}
	require.NoError(t, repos.Supplier.Create(ctx, supplier))

	product := &domain.Product{
		ID:            uuid.New(),
		Name:          "Robe Wax",
		Category:      "vetements",
		SKU:           "ROBE-001",
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		SupplierPrice: 100000,
		PublicPrice:   150000,
		Stock:         stock,
		MinStock:      1,
		Status:        domain.ProductStatusActive,
		IsAvailable:   true,
	}
	require.NoError(t, repos.Product.Create(ctx, product))

	return supplier, product
}

func TestDecrementStockConcurrency(t *testing.T) {
	repos := setupDatabase(t)
	ctx := context.Background()

	const stock = 10
	_, product := seedSupplierAndProduct(t, repos, stock)

	// Twice as many single-unit reservations as there is stock. Exactly
	// stock of them may succeed, and stock must end at zero, never below.
	var wg sync.WaitGroup
	successes := make(chan struct{}, stock*2)
	for i := 0; i < stock*2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repos.Product.DecrementStock(ctx, product.ID, 1); err == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(t, stock, count)

	stored, err := repos.Product.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)
	assert.Equal(t, domain.ProductStatusOutOfStock, stored.Status)
}

func TestDecrementStockInsufficient(t *testing.T) {
	repos := setupDatabase(t)
	ctx := context.Background()

	_, product := seedSupplierAndProduct(t, repos, 2)

	err := repos.Product.DecrementStock(ctx, product.ID, 5)
	var stockErr *errors.ErrInsufficientStock
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)

	err = repos.Product.DecrementStock(ctx, uuid.New(), 1)
	var nferr *errors.ErrNotFound
	assert.ErrorAs(t, err, &nferr)
}

func TestOrderAggregateRoundTrip(t *testing.T) {
	repos := setupDatabase(t)
	ctx := context.Background()

	supplier, product := seedSupplierAndProduct(t, repos, 10)

	order := &domain.Order{
		ID:            uuid.New(),
		OrderNumber:   "FA-123456",
		CustomerEmail: "aissatou@example.com",
		CustomerPhone: "+224621111111",
		Items: []domain.OrderItem{{
			ProductID:     product.ID,
			ProductName:   product.Name,
			SKU:           product.SKU,
			Quantity:      2,
			SupplierPrice: product.SupplierPrice,
			PublicPrice:   product.PublicPrice,
			TotalPrice:    300000,
			SupplierID:    supplier.ID,
			SupplierName:  supplier.Name,
		}},
		Subtotal:    300000,
		DeliveryFee: 15000,
		Total:       315000,
		TotalMargin: 100000,
		DeliveryAddress: domain.DeliveryAddress{
			FirstName: "Aissatou", LastName: "Bah",
			Phone: "+224621111111", Address: "Quartier Almamya", City: "Conakry",
		},
		PaymentMethod: domain.PaymentMethodOrangeMoney,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Suppliers: []domain.SupplierSubOrder{{
			SupplierID:    supplier.ID,
			SupplierName:  supplier.Name,
			SupplierPhone: supplier.Phone,
			Items:         []uuid.UUID{product.ID},
			Response:      domain.SupplierResponsePending,
		}},
	}
	require.NoError(t, repos.Order.Create(ctx, order))
	assert.Equal(t, 1, order.Version)

	t.Run("document columns survive the round trip", func(t *testing.T) {
		stored, err := repos.Order.GetByNumber(ctx, "FA-123456")
		require.NoError(t, err)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, "Robe Wax", stored.Items[0].ProductName)
		require.Len(t, stored.Suppliers, 1)
		assert.Equal(t, supplier.Phone, stored.Suppliers[0].SupplierPhone)
		assert.Equal(t, "Conakry", stored.DeliveryAddress.City)
	})

	t.Run("duplicate order number conflicts", func(t *testing.T) {
		dupe := *order
		dupe.ID = uuid.New()
		err := repos.Order.Create(ctx, &dupe)
		var conflict *errors.ErrConflict
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "order", conflict.Resource)
	})

	t.Run("version check rejects stale writers", func(t *testing.T) {
		first, err := repos.Order.GetByID(ctx, order.ID)
		require.NoError(t, err)
		second, err := repos.Order.GetByID(ctx, order.ID)
		require.NoError(t, err)

		first.Status = domain.OrderStatusConfirmed
		require.NoError(t, repos.Order.Update(ctx, first))

		second.Status = domain.OrderStatusCancelled
		err = repos.Order.Update(ctx, second)
		var stale *errors.ErrStale
		require.ErrorAs(t, err, &stale)

		stored, err := repos.Order.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, stored.Status)
	})

	t.Run("listing by supplier uses the sub-order documents", func(t *testing.T) {
		id := supplier.ID
		orders, total, err := repos.Order.List(ctx, repository.OrderFilter{SupplierID: &id, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
	})
}
