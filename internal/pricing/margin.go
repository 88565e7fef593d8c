package pricing

import "github.com/shopspring/decimal"

// Margin is the platform markup on one unit: the difference between what the
// customer pays and what the supplier charges.
type Margin struct {
	Margin     float64
	Percentage float64
}

// Calculate computes the margin and margin percentage for a supplier/public
// price pair. A negative margin is returned as-is; pricing mistakes are a
// data-quality concern for the caller, not an error here. The percentage is
// rounded to one decimal place and is zero when the supplier price is zero.
func Calculate(supplierPrice, publicPrice float64) Margin {
	margin := publicPrice - supplierPrice
	if supplierPrice == 0 {
		return Margin{Margin: margin}
	}

	pct := decimal.NewFromFloat(margin).
		Div(decimal.NewFromFloat(supplierPrice)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	percentage, _ := pct.Float64()

	return Margin{Margin: margin, Percentage: percentage}
}
