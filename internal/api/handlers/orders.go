package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/internal/service"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []domain.OrderItem `json:"items"`

	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
	TotalMargin float64 `json:"total_margin"`

	DeliveryAddress domain.DeliveryAddress `json:"delivery_address"`
	PaymentMethod   domain.PaymentMethod   `json:"payment_method"`

	Status           domain.OrderStatus        `json:"status"`
	PaymentStatus    domain.PaymentStatus      `json:"payment_status"`
	PaymentReference string                    `json:"payment_reference,omitempty"`
	Suppliers        []domain.SupplierSubOrder `json:"suppliers"`

	Notes      string `json:"notes,omitempty"`
	AdminNotes string `json:"admin_notes,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID.String(),
		OrderNumber:      order.OrderNumber,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		Items:            order.Items,
		Subtotal:         order.Subtotal,
		DeliveryFee:      order.DeliveryFee,
		Total:            order.Total,
		TotalMargin:      order.TotalMargin,
		DeliveryAddress:  order.DeliveryAddress,
		PaymentMethod:    order.PaymentMethod,
		Status:           order.Status,
		PaymentStatus:    order.PaymentStatus,
		PaymentReference: order.PaymentReference,
		Suppliers:        order.Suppliers,
		Notes:            order.Notes,
		AdminNotes:       order.AdminNotes,
		CreatedAt:        order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        order.UpdatedAt.Format(time.RFC3339),
	}
}

// publicOrderView strips margin figures, supplier details and internal notes
// from the checkout response.
func publicOrderView(order *domain.Order) OrderResponse {
	resp := toOrderResponse(order)
	resp.TotalMargin = 0
	resp.AdminNotes = ""
	resp.Suppliers = nil
	items := make([]domain.OrderItem, len(resp.Items))
	copy(items, resp.Items)
	for i := range items {
		items[i].SupplierPrice = 0
	}
	resp.Items = items
	return resp
}

// HandleCreateOrder handles POST /api/v1/orders
func HandleCreateOrder(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order, err := services.Orders.Create(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusCreated, publicOrderView(order))
	}
}

// HandleGetOrder handles GET /api/v1/admin/orders/:id
func HandleGetOrder(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid order ID")
			return
		}

		order, err := services.Orders.Get(c.Request.Context(), orderID)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toOrderResponse(order))
	}
}

// HandleListOrders handles GET /api/v1/admin/orders
func HandleListOrders(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.OrderFilter{
			Status:        domain.OrderStatus(c.Query("status")),
			PaymentStatus: domain.PaymentStatus(c.Query("payment_status")),
			Search:        c.Query("search"),
		}
		filter.Page, filter.Limit = paginationParams(c)

		if raw := c.Query("supplier_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid supplier ID")
				return
			}
			filter.SupplierID = &id
		}
		if raw := c.Query("date_from"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid date_from, expected YYYY-MM-DD")
				return
			}
			filter.DateFrom = &t
		}
		if raw := c.Query("date_to"); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(c, http.StatusBadRequest, "invalid date_to, expected YYYY-MM-DD")
				return
			}
			filter.DateTo = &t
		}

		orders, total, err := services.Orders.List(c.Request.Context(), filter)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		responses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			responses[i] = toOrderResponse(order)
		}
		respondOK(c, http.StatusOK, listEnvelope(responses, total, filter.Page, filter.Limit))
	}
}

// HandleUpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status
func HandleUpdateOrderStatus(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid order ID")
			return
		}

		var req service.UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order, err := services.Orders.UpdateStatus(c.Request.Context(), orderID, req.Status, req.AdminNotes)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toOrderResponse(order))
	}
}

// HandleConfirmPayment handles PUT /api/v1/admin/orders/:id/payment
func HandleConfirmPayment(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid order ID")
			return
		}

		var req service.ConfirmPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order, err := services.Orders.ConfirmPayment(c.Request.Context(), orderID, req.PaymentReference)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toOrderResponse(order))
	}
}

// HandleSupplierResponse handles PUT /api/v1/admin/orders/:id/supplier-response.
// Admins use it to record answers received outside the SMS channel, e.g. a
// phone call.
func HandleSupplierResponse(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid order ID")
			return
		}

		var req service.SupplierResponseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order, err := services.Orders.ProcessSupplierResponse(c.Request.Context(), orderID, req.SupplierID, req.Response)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toOrderResponse(order))
	}
}
