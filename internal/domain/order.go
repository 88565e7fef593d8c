package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/fashop/marketplace-api/pkg/errors"
)

// RecomputeTotals refreshes the derived money fields from the item list:
// subtotal, grand total and the platform's total margin.
func (o *Order) RecomputeTotals() {
	subtotal := 0.0
	margin := 0.0
	for _, item := range o.Items {
		subtotal += item.TotalPrice
		margin += (item.PublicPrice - item.SupplierPrice) * float64(item.Quantity)
	}
	o.Subtotal = subtotal
	o.Total = subtotal + o.DeliveryFee
	o.TotalMargin = margin
}

// UpdateStatus applies an admin-driven status change. Beyond enum membership
// there is no transition guard: operations staff move orders freely, matching
// how the dashboard has always behaved.
func (o *Order) UpdateStatus(status OrderStatus, adminNotes string) error {
	if !status.IsValid() {
		return &errors.ErrValidation{Message: "invalid order status: " + string(status)}
	}
	o.Status = status
	if adminNotes != "" {
		o.AdminNotes = adminNotes
	}
	return nil
}

// ConfirmPayment marks the order paid, independent of its fulfilment status.
func (o *Order) ConfirmPayment(reference string) {
	o.PaymentStatus = PaymentStatusPaid
	if reference != "" {
		o.PaymentReference = reference
	}
}

// SubOrderFor returns the sub-order belonging to the given supplier, or nil.
func (o *Order) SubOrderFor(supplierID uuid.UUID) *SupplierSubOrder {
	for i := range o.Suppliers {
		if o.Suppliers[i].SupplierID == supplierID {
			return &o.Suppliers[i]
		}
	}
	return nil
}

// ProcessSupplierResponse records one supplier's confirm/reject reply and
// reduces the replies into the aggregate status: all confirmed means the
// order is confirmed, any rejection cancels it, anything else leaves the
// status untouched. Re-processing the same reply is a state-wise no-op (the
// response timestamp moves, the reduction result does not).
func (o *Order) ProcessSupplierResponse(supplierID uuid.UUID, response SupplierResponse, now time.Time) (*SupplierSubOrder, error) {
	if !response.IsTerminal() {
		return nil, &errors.ErrValidation{Message: "supplier response must be confirmed or rejected"}
	}

	sub := o.SubOrderFor(supplierID)
	if sub == nil {
		return nil, &errors.ErrNotFound{Resource: "supplier in order", ID: supplierID.String()}
	}

	sub.Response = response
	t := now
	sub.ResponseTime = &t

	allConfirmed := true
	anyRejected := false
	for i := range o.Suppliers {
		if o.Suppliers[i].Response != SupplierResponseConfirmed {
			allConfirmed = false
		}
		if o.Suppliers[i].Response == SupplierResponseRejected {
			anyRejected = true
		}
	}

	if allConfirmed {
		o.Status = OrderStatusConfirmed
	} else if anyRejected {
		o.Status = OrderStatusCancelled
	}

	return sub, nil
}
