package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/notify"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

type productFixture struct {
	service   *ProductService
	products  *fakeProductRepo
	suppliers *fakeSupplierRepo
	gateway   *fakeGateway
	supplier  *domain.Supplier
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	products := newFakeProductRepo()
	suppliers := newFakeSupplierRepo()
	gateway := newFakeGateway()

	repos := &repository.Repositories{Product: products, Supplier: suppliers}

	supplier := &domain.Supplier{ID: uuid.New(), Name: "Alpha Textiles", Phone: "+224620000001", IsActive: true}
	suppliers.put(supplier)

	return &productFixture{
		service:   NewProductService(repos, gateway, zap.NewNop()),
		products:  products,
		suppliers: suppliers,
		gateway:   gateway,
		supplier:  supplier,
	}
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("denormalizes the supplier and derives margin and image", func(t *testing.T) {
		f := newProductFixture(t)

		product, err := f.service.Create(ctx, CreateProductRequest{
			Name:          "Robe Wax",
			Description:   "Robe en tissu wax",
			Category:      "vetements",
			SKU:           "robe-001",
			SupplierID:    f.supplier.ID,
			SupplierPrice: 100000,
			PublicPrice:   150000,
			Stock:         10,
			Images:        []string{"a.jpg", "b.jpg"},
		})
		require.NoError(t, err)

		assert.Equal(t, "ROBE-001", product.SKU)
		assert.Equal(t, "Alpha Textiles", product.SupplierName)
		assert.Equal(t, 50000.0, product.Margin)
		assert.Equal(t, 50.0, product.MarginPercentage)
		assert.Equal(t, "a.jpg", product.MainImage)
		assert.Equal(t, domain.ProductStatusDraft, product.Status)
		assert.Equal(t, 1, product.MinStock)
	})

	t.Run("unknown supplier fails", func(t *testing.T) {
		f := newProductFixture(t)

		_, err := f.service.Create(ctx, CreateProductRequest{
			Name:       "Robe Wax",
			SKU:        "ROBE-001",
			SupplierID: uuid.New(),
		})
		var nferr *errors.ErrNotFound
		assert.ErrorAs(t, err, &nferr)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.service.Create(ctx, CreateProductRequest{
		Name: "Robe Wax", Description: "d", Category: "vetements", SKU: "ROBE-001",
		SupplierID: f.supplier.ID, SupplierPrice: 100000, PublicPrice: 150000, Stock: 10,
	})
	require.NoError(t, err)

	t.Run("price change recomputes the margin", func(t *testing.T) {
		newPrice := 200000.0
		updated, err := f.service.Update(ctx, product.ID, UpdateProductRequest{PublicPrice: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, 100000.0, updated.Margin)
		assert.Equal(t, 100.0, updated.MarginPercentage)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		bad := domain.ProductStatus("discontinued")
		_, err := f.service.Update(ctx, product.ID, UpdateProductRequest{Status: &bad})
		var verr *errors.ErrValidation
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	newProduct := func(f *productFixture, stock, minStock int) *domain.Product {
		p, err := f.service.Create(ctx, CreateProductRequest{
			Name: "Robe Wax", Description: "d", Category: "vetements", SKU: "ROBE-001",
			SupplierID: f.supplier.ID, SupplierPrice: 100000, PublicPrice: 150000,
			Stock: stock, MinStock: minStock,
		})
		require.NoError(t, err)
		active := domain.ProductStatusActive
		p, err = f.service.Update(ctx, p.ID, UpdateProductRequest{Status: &active})
		require.NoError(t, err)
		return p
	}

	t.Run("set, add and subtract", func(t *testing.T) {
		f := newProductFixture(t)
		p := newProduct(f, 10, 2)

		p2, err := f.service.AdjustStock(ctx, p.ID, AdjustStockRequest{Operation: "set", Quantity: 20})
		require.NoError(t, err)
		assert.Equal(t, 20, p2.Stock)

		p2, err = f.service.AdjustStock(ctx, p.ID, AdjustStockRequest{Operation: "add", Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, 25, p2.Stock)

		p2, err = f.service.AdjustStock(ctx, p.ID, AdjustStockRequest{Operation: "subtract", Quantity: 30})
		require.NoError(t, err)
		assert.Equal(t, 0, p2.Stock)
		assert.Equal(t, domain.ProductStatusOutOfStock, p2.Status)
	})

	t.Run("dropping to the threshold alerts the supplier", func(t *testing.T) {
		f := newProductFixture(t)
		p := newProduct(f, 10, 3)

		_, err := f.service.AdjustStock(ctx, p.ID, AdjustStockRequest{Operation: "set", Quantity: 3})
		require.NoError(t, err)

		require.Len(t, f.gateway.sent, 1)
		assert.Equal(t, f.supplier.Phone, f.gateway.sent[0].Recipient)
		assert.Equal(t, notify.TemplateLowStock, f.gateway.sent[0].Template)
	})

	t.Run("healthy stock stays quiet", func(t *testing.T) {
		f := newProductFixture(t)
		p := newProduct(f, 10, 3)

		_, err := f.service.AdjustStock(ctx, p.ID, AdjustStockRequest{Operation: "set", Quantity: 8})
		require.NoError(t, err)
		assert.Empty(t, f.gateway.sent)
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(t)

	product, err := f.service.Create(ctx, CreateProductRequest{
		Name: "Robe Wax", Description: "d", Category: "vetements", SKU: "ROBE-001",
		SupplierID: f.supplier.ID, SupplierPrice: 100000, PublicPrice: 150000, Stock: 10,
	})
	require.NoError(t, err)

	t.Run("draft products are hidden from the storefront", func(t *testing.T) {
		_, err := f.service.Get(ctx, product.ID, false)
		var nferr *errors.ErrNotFound
		assert.ErrorAs(t, err, &nferr)

		got, err := f.service.Get(ctx, product.ID, true)
		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("storefront views bump the counter", func(t *testing.T) {
		active := domain.ProductStatusActive
		_, err := f.service.Update(ctx, product.ID, UpdateProductRequest{Status: &active})
		require.NoError(t, err)

		_, err = f.service.Get(ctx, product.ID, false)
		require.NoError(t, err)

		stored, err := f.products.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Views)
	})
}
