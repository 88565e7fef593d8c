package notify

import (
	"fmt"
	"strings"
)

// Render produces the message body for a template. Rendering lives in the
// core so every provider sends identical text.
func Render(template Template, data interface{}) (string, error) {
	switch template {
	case TemplateNewOrder:
		d, ok := data.(NewOrderData)
		if !ok {
			return "", fmt.Errorf("template %s expects NewOrderData, got %T", template, data)
		}
		return renderNewOrder(d), nil
	case TemplateOrderConfirmed:
		d, ok := data.(OrderConfirmedData)
		if !ok {
			return "", fmt.Errorf("template %s expects OrderConfirmedData, got %T", template, data)
		}
		return renderOrderConfirmed(d), nil
	case TemplateLowStock:
		d, ok := data.(LowStockData)
		if !ok {
			return "", fmt.Errorf("template %s expects LowStockData, got %T", template, data)
		}
		return renderLowStock(d), nil
	default:
		return "", fmt.Errorf("unknown template %q", template)
	}
}

func renderNewOrder(d NewOrderData) string {
	lines := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		lines = append(lines, fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
	}

	return strings.TrimSpace(fmt.Sprintf(`FASHOP - Nouvelle Commande!

Commande: %s
Client: %s
Produit(s): %s
Total: %s

Adresse livraison:
%s
%s, %s
Tel: %s

Confirmez disponibilite en repondant:
1 pour confirmer
0 si indisponible

FASHOP - Votre partenaire dropshipping`,
		d.OrderNumber,
		d.CustomerPhone,
		strings.Join(lines, ", "),
		FormatPrice(d.Total),
		d.Address.FullName,
		d.Address.Address, d.Address.City,
		d.Address.Phone,
	))
}

func renderOrderConfirmed(d OrderConfirmedData) string {
	return strings.TrimSpace(fmt.Sprintf(`FASHOP - Commande Confirmee

Commande %s confirmee par le fournisseur.
Livraison programmee sous 24-48h.

Merci de votre confiance!
FASHOP`, d.OrderNumber))
}

func renderLowStock(d LowStockData) string {
	return strings.TrimSpace(fmt.Sprintf(`FASHOP - Stock Faible

Produit: %s
Stock actuel: %d
Stock minimum: %d

Pensez a reapprovisionner.

FASHOP - Gestion Stock`, d.ProductName, d.Stock, d.MinStock))
}

// FormatPrice renders a GNF amount the way the storefront does: millions as
// "1.5M GNF", thousands as "15k GNF", small amounts verbatim.
func FormatPrice(price float64) string {
	switch {
	case price >= 1000000:
		return fmt.Sprintf("%.1fM GNF", price/1000000)
	case price >= 1000:
		return fmt.Sprintf("%.0fk GNF", price/1000)
	default:
		return fmt.Sprintf("%.0f GNF", price)
	}
}
