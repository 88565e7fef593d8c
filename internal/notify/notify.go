// Package notify sends templated SMS messages to suppliers and customers.
// The core only depends on the Gateway contract; delivery failures are
// logged by callers and never roll back the operation that triggered them.
package notify

import "context"

// Template selects which message to render.
type Template string

const (
	TemplateNewOrder       Template = "new_order"
	TemplateOrderConfirmed Template = "order_confirmed"
	TemplateLowStock       Template = "low_stock"
)

// Result reports a successfully dispatched message.
type Result struct {
	MessageID string
}

// Gateway sends a rendered template to a phone number.
type Gateway interface {
	Notify(ctx context.Context, recipient string, template Template, data interface{}) (Result, error)
}

// NewOrderData fills the fan-out message sent to each supplier when an
// order is created.
type NewOrderData struct {
	OrderNumber   string
	CustomerPhone string
	Items         []OrderLine
	Total         float64
	Address       AddressData
}

// OrderLine is one product line in a supplier notification.
type OrderLine struct {
	ProductName string
	Quantity    int
}

// AddressData is the delivery destination included in supplier messages.
type AddressData struct {
	FullName string
	Address  string
	City     string
	Phone    string
}

// OrderConfirmedData fills the customer message sent once every supplier
// has confirmed.
type OrderConfirmedData struct {
	OrderNumber string
}

// LowStockData fills the restock alert sent to a supplier.
type LowStockData struct {
	ProductName string
	Stock       int
	MinStock    int
}
