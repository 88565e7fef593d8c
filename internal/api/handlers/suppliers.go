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

// SupplierResponse represents the supplier response
type SupplierResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone"`
	WhatsApp    string   `json:"whatsapp,omitempty"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`

	Rating              float64 `json:"rating"`
	TotalOrders         int     `json:"total_orders"`
	SuccessfulOrders    int     `json:"successful_orders"`
	SuccessRate         int     `json:"success_rate"`
	AverageResponseTime float64 `json:"average_response_time_minutes"`

	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toSupplierResponse(s *domain.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:                  s.ID.String(),
		Name:                s.Name,
		Email:               s.Email,
		Phone:               s.Phone,
		WhatsApp:            s.WhatsApp,
		Address:             s.Address,
		City:                s.City,
		Description:         s.Description,
		Categories:          s.Categories,
		Rating:              s.Rating,
		TotalOrders:         s.TotalOrders,
		SuccessfulOrders:    s.SuccessfulOrders,
		SuccessRate:         s.SuccessRate(),
		AverageResponseTime: s.AverageResponseTime,
		IsActive:            s.IsActive,
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           s.UpdatedAt.Format(time.RFC3339),
	}
}

// HandleListSuppliers handles GET /api/v1/admin/suppliers
func HandleListSuppliers(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := repository.SupplierFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			City:     c.Query("city"),
		}
		filter.Page, filter.Limit = paginationParams(c)

		if raw := c.Query("is_active"); raw != "" {
			active := raw == "true"
			filter.IsActive = &active
		}

		suppliers, total, err := services.Suppliers.List(c.Request.Context(), filter)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		responses := make([]SupplierResponse, len(suppliers))
		for i, s := range suppliers {
			responses[i] = toSupplierResponse(s)
		}
		respondOK(c, http.StatusOK, listEnvelope(responses, total, filter.Page, filter.Limit))
	}
}

// HandleGetSupplier handles GET /api/v1/admin/suppliers/:id
func HandleGetSupplier(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid supplier ID")
			return
		}

		supplier, err := services.Suppliers.Get(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toSupplierResponse(supplier))
	}
}

// HandleCreateSupplier handles POST /api/v1/admin/suppliers
func HandleCreateSupplier(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		supplier, err := services.Suppliers.Create(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusCreated, toSupplierResponse(supplier))
	}
}

// HandleUpdateSupplier handles PUT /api/v1/admin/suppliers/:id
func HandleUpdateSupplier(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid supplier ID")
			return
		}

		var req service.UpdateSupplierRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		supplier, err := services.Suppliers.Update(c.Request.Context(), id, req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toSupplierResponse(supplier))
	}
}

// HandleDeactivateSupplier handles DELETE /api/v1/admin/suppliers/:id
func HandleDeactivateSupplier(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid supplier ID")
			return
		}

		if err := services.Suppliers.Deactivate(c.Request.Context(), id); err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondMessage(c, http.StatusOK, "supplier deactivated")
	}
}
