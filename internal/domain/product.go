package domain

import "github.com/fashop/marketplace-api/internal/pricing"

// RecomputeMargin refreshes the derived margin fields. Call it whenever the
// supplier or public price changes; order-item snapshots are never affected.
func (p *Product) RecomputeMargin() {
	m := pricing.Calculate(p.SupplierPrice, p.PublicPrice)
	p.Margin = m.Margin
	p.MarginPercentage = m.Percentage
}

// ApplyStockDelta adjusts the stock level by delta, clamping at zero, and
// keeps the stock/status coupling: zero stock flips an active product to
// out_of_stock, restocking flips it back.
func (p *Product) ApplyStockDelta(delta int) {
	p.SetStock(p.Stock + delta)
}

// SetStock replaces the stock level, clamping at zero, and applies the same
// status coupling as ApplyStockDelta.
func (p *Product) SetStock(stock int) {
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock

	if p.Stock <= 0 {
		if p.Status == ProductStatusActive {
			p.Status = ProductStatusOutOfStock
		}
		p.IsAvailable = false
	} else if p.Status == ProductStatusOutOfStock {
		p.Status = ProductStatusActive
		p.IsAvailable = true
	}
}

// Deactivate soft-deletes the product. Rows are never removed so that order
// history keeps resolving its product references.
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.IsAvailable = false
}

// IsLowStock reports whether the stock level has reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// CanBeOrdered reports whether the product is visible and purchasable.
func (p *Product) CanBeOrdered() bool {
	return p.Status == ProductStatusActive && p.IsAvailable
}
