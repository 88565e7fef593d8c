package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNewOrder(t *testing.T) {
	msg, err := Render(TemplateNewOrder, NewOrderData{
		OrderNumber:   "FA-123456",
		CustomerPhone: "+224621234567",
		Items: []OrderLine{
			{ProductName: "Robe Wax", Quantity: 2},
			{ProductName: "Sac cuir", Quantity: 1},
		},
		Total: 350000,
		Address: AddressData{
			FullName: "Aissatou Bah",
			Address:  "Quartier Almamya",
			City:     "Conakry",
			Phone:    "+224621234567",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, msg, "FASHOP - Nouvelle Commande!")
	assert.Contains(t, msg, "Commande: FA-123456")
	assert.Contains(t, msg, "Robe Wax (x2), Sac cuir (x1)")
	assert.Contains(t, msg, "Total: 350k GNF")
	assert.Contains(t, msg, "Aissatou Bah")
	assert.Contains(t, msg, "1 pour confirmer")
	assert.Contains(t, msg, "0 si indisponible")
}

func TestRenderOrderConfirmed(t *testing.T) {
	msg, err := Render(TemplateOrderConfirmed, OrderConfirmedData{OrderNumber: "FA-654321"})
	require.NoError(t, err)

	assert.Contains(t, msg, "Commande FA-654321 confirmee")
	assert.Contains(t, msg, "24-48h")
}

func TestRenderLowStock(t *testing.T) {
	msg, err := Render(TemplateLowStock, LowStockData{ProductName: "Robe Wax", Stock: 2, MinStock: 5})
	require.NoError(t, err)

	assert.Contains(t, msg, "Stock Faible")
	assert.Contains(t, msg, "Stock actuel: 2")
	assert.Contains(t, msg, "Stock minimum: 5")
}

func TestRenderRejectsWrongPayload(t *testing.T) {
	_, err := Render(TemplateNewOrder, OrderConfirmedData{OrderNumber: "FA-111111"})
	assert.Error(t, err)

	_, err = Render(Template("unknown"), nil)
	assert.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1.5M GNF", FormatPrice(1500000))
	assert.Equal(t, "1.0M GNF", FormatPrice(1000000))
	assert.Equal(t, "15k GNF", FormatPrice(15000))
	assert.Equal(t, "999k GNF", FormatPrice(999000))
	assert.Equal(t, "500 GNF", FormatPrice(500))
	assert.Equal(t, "0 GNF", FormatPrice(0))
}
