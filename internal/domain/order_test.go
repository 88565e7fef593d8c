package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashop/marketplace-api/pkg/errors"
)

func twoSupplierOrder() (*Order, uuid.UUID, uuid.UUID) {
	s1 := uuid.New()
	s2 := uuid.New()
	order := &Order{
		ID:          uuid.New(),
		OrderNumber: "FA-123456",
		Status:      OrderStatusPending,
		Suppliers: []SupplierSubOrder{
			{SupplierID: s1, SupplierName: "Alpha", SupplierPhone: "+224620000001", Response: SupplierResponsePending},
			{SupplierID: s2, SupplierName: "Beta", SupplierPhone: "+224620000002", Response: SupplierResponsePending},
		},
	}
	return order, s1, s2
}

func TestProcessSupplierResponse(t *testing.T) {
	now := time.Now()

	t.Run("stays pending until every supplier confirms", func(t *testing.T) {
		order, s1, s2 := twoSupplierOrder()

		sub, err := order.ProcessSupplierResponse(s1, SupplierResponseConfirmed, now)
		require.NoError(t, err)
		assert.Equal(t, SupplierResponseConfirmed, sub.Response)
		assert.Equal(t, OrderStatusPending, order.Status)

		_, err = order.ProcessSupplierResponse(s2, SupplierResponseConfirmed, now)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
	})

	t.Run("any rejection cancels the order", func(t *testing.T) {
		order, s1, s2 := twoSupplierOrder()

		_, err := order.ProcessSupplierResponse(s1, SupplierResponseConfirmed, now)
		require.NoError(t, err)

		_, err = order.ProcessSupplierResponse(s2, SupplierResponseRejected, now)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("reprocessing the same reply is a state no-op", func(t *testing.T) {
		order, s1, s2 := twoSupplierOrder()

		_, err := order.ProcessSupplierResponse(s1, SupplierResponseConfirmed, now)
		require.NoError(t, err)
		_, err = order.ProcessSupplierResponse(s2, SupplierResponseConfirmed, now)
		require.NoError(t, err)
		require.Equal(t, OrderStatusConfirmed, order.Status)

		later := now.Add(time.Hour)
		sub, err := order.ProcessSupplierResponse(s1, SupplierResponseConfirmed, later)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.Equal(t, later, *sub.ResponseTime)
	})

	t.Run("rejects a pending response value", func(t *testing.T) {
		order, s1, _ := twoSupplierOrder()

		_, err := order.ProcessSupplierResponse(s1, SupplierResponsePending, now)
		var verr *errors.ErrValidation
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown supplier is not found", func(t *testing.T) {
		order, _, _ := twoSupplierOrder()

		_, err := order.ProcessSupplierResponse(uuid.New(), SupplierResponseConfirmed, now)
		var nferr *errors.ErrNotFound
		assert.ErrorAs(t, err, &nferr)
	})

	t.Run("records the response timestamp", func(t *testing.T) {
		order, s1, _ := twoSupplierOrder()

		sub, err := order.ProcessSupplierResponse(s1, SupplierResponseConfirmed, now)
		require.NoError(t, err)
		require.NotNil(t, sub.ResponseTime)
		assert.Equal(t, now, *sub.ResponseTime)
	})
}

func TestRecomputeTotals(t *testing.T) {
	order := &Order{
		DeliveryFee: 15000,
		Items: []OrderItem{
			{Quantity: 2, SupplierPrice: 30000, PublicPrice: 45000, TotalPrice: 90000},
			{Quantity: 1, SupplierPrice: 100000, PublicPrice: 150000, TotalPrice: 150000},
		},
	}

	order.RecomputeTotals()

	assert.Equal(t, 240000.0, order.Subtotal)
	assert.Equal(t, 255000.0, order.Total)
	assert.Equal(t, 80000.0, order.TotalMargin)
}

func TestUpdateStatus(t *testing.T) {
	order, _, _ := twoSupplierOrder()

	require.NoError(t, order.UpdateStatus(OrderStatusShipped, "left the depot"))
	assert.Equal(t, OrderStatusShipped, order.Status)
	assert.Equal(t, "left the depot", order.AdminNotes)

	// Empty notes leave the previous notes in place.
	require.NoError(t, order.UpdateStatus(OrderStatusDelivered, ""))
	assert.Equal(t, "left the depot", order.AdminNotes)

	err := order.UpdateStatus(OrderStatus("lost"), "")
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, OrderStatusDelivered, order.Status)
}

func TestConfirmPayment(t *testing.T) {
	order, _, _ := twoSupplierOrder()
	order.PaymentStatus = PaymentStatusPending

	order.ConfirmPayment("OM-778899")
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "OM-778899", order.PaymentReference)

	order.ConfirmPayment("")
	assert.Equal(t, "OM-778899", order.PaymentReference)
}

func TestOrderNumber(t *testing.T) {
	t.Run("generated numbers match the canonical format", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.Regexp(t, `^FA-\d{6}$`, GenerateOrderNumber())
		}
	})

	t.Run("validation accepts both formats", func(t *testing.T) {
		assert.True(t, ValidOrderNumber("FA-123456"))
		assert.True(t, ValidOrderNumber("FASH-1234567890"))
		assert.False(t, ValidOrderNumber("FA-12345"))
		assert.False(t, ValidOrderNumber("FA-1234567"))
		assert.False(t, ValidOrderNumber("fash-123"))
		assert.False(t, ValidOrderNumber("ORDER-123456"))
		assert.False(t, ValidOrderNumber(""))
	})
}

func TestParseSupplierReply(t *testing.T) {
	confirms := []string{"1", "OUI", "oui", " yes ", "ok", "Confirme"}
	for _, raw := range confirms {
		resp, ok := ParseSupplierReply(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, SupplierResponseConfirmed, resp, raw)
	}

	rejects := []string{"0", "NON", "no", "indisponible"}
	for _, raw := range rejects {
		resp, ok := ParseSupplierReply(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, SupplierResponseRejected, resp, raw)
	}

	for _, raw := range []string{"", "2", "peut-etre", "oui non"} {
		_, ok := ParseSupplierReply(raw)
		assert.False(t, ok, raw)
	}
}
