package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetStock(t *testing.T) {
	t.Run("active product with zero stock goes out of stock", func(t *testing.T) {
		p := &Product{Status: ProductStatusActive, Stock: 5, IsAvailable: true}

		p.SetStock(0)
		assert.Equal(t, ProductStatusOutOfStock, p.Status)
		assert.False(t, p.IsAvailable)
	})

	t.Run("restocking flips back to active", func(t *testing.T) {
		p := &Product{Status: ProductStatusOutOfStock, Stock: 0}

		p.SetStock(10)
		assert.Equal(t, ProductStatusActive, p.Status)
		assert.True(t, p.IsAvailable)
		assert.Equal(t, 10, p.Stock)
	})

	t.Run("draft product keeps its status at zero stock", func(t *testing.T) {
		p := &Product{Status: ProductStatusDraft, Stock: 3}

		p.SetStock(0)
		assert.Equal(t, ProductStatusDraft, p.Status)
		assert.False(t, p.IsAvailable)
	})

	t.Run("negative values clamp at zero", func(t *testing.T) {
		p := &Product{Status: ProductStatusActive, Stock: 2, IsAvailable: true}

		p.ApplyStockDelta(-5)
		assert.Equal(t, 0, p.Stock)
		assert.Equal(t, ProductStatusOutOfStock, p.Status)
	})

	t.Run("restocking an inactive product does not reactivate it", func(t *testing.T) {
		p := &Product{Status: ProductStatusInactive, Stock: 0}

		p.SetStock(20)
		assert.Equal(t, ProductStatusInactive, p.Status)
		assert.False(t, p.IsAvailable)
	})
}

func TestRecomputeMargin(t *testing.T) {
	p := &Product{SupplierPrice: 100000, PublicPrice: 150000}

	p.RecomputeMargin()
	assert.Equal(t, 50000.0, p.Margin)
	assert.Equal(t, 50.0, p.MarginPercentage)
}

func TestIsLowStock(t *testing.T) {
	p := &Product{Stock: 3, MinStock: 5}
	assert.True(t, p.IsLowStock())

	p.Stock = 5
	assert.True(t, p.IsLowStock())

	p.Stock = 6
	assert.False(t, p.IsLowStock())
}

func TestCanBeOrdered(t *testing.T) {
	p := &Product{Status: ProductStatusActive, IsAvailable: true}
	assert.True(t, p.CanBeOrdered())

	p.Deactivate()
	assert.False(t, p.CanBeOrdered())
	assert.Equal(t, ProductStatusInactive, p.Status)
}
