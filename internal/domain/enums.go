package domain

import "strings"

// OrderStatus represents the aggregate status of a customer order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
		OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order, tracked
// independently of the fulfilment status.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PaymentMethodOrangeMoney PaymentMethod = "orange_money"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodCash        PaymentMethod = "cash"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodOrangeMoney, PaymentMethodCard, PaymentMethodCash:
		return true
	default:
		return false
	}
}

// ProductStatus represents the catalog state of a product
type ProductStatus string

const (
	ProductStatusDraft      ProductStatus = "draft"
	ProductStatusActive     ProductStatus = "active"
	ProductStatusInactive   ProductStatus = "inactive"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// IsValid checks if the product status is valid
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusInactive, ProductStatusOutOfStock:
		return true
	default:
		return false
	}
}

// SupplierResponse is a supplier's reply to a sub-order notification
type SupplierResponse string

const (
	SupplierResponsePending   SupplierResponse = "pending"
	SupplierResponseConfirmed SupplierResponse = "confirmed"
	SupplierResponseRejected  SupplierResponse = "rejected"
)

// IsValid checks if the supplier response is valid
func (r SupplierResponse) IsValid() bool {
	switch r {
	case SupplierResponsePending, SupplierResponseConfirmed, SupplierResponseRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the response is a final answer from the supplier.
func (r SupplierResponse) IsTerminal() bool {
	return r == SupplierResponseConfirmed || r == SupplierResponseRejected
}

// ParseSupplierReply resolves the raw text of a supplier SMS reply into a
// response value at the boundary, so handlers never pass free-form strings
// into the aggregate. Suppliers answer with "1"/"OUI"/"YES" to confirm and
// "0"/"NON"/"NO" to reject; anything else is reported as invalid.
func ParseSupplierReply(raw string) (SupplierResponse, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "oui", "yes", "ok", "confirme", "confirmed":
		return SupplierResponseConfirmed, true
	case "0", "non", "no", "indisponible", "rejected":
		return SupplierResponseRejected, true
	default:
		return "", false
	}
}
