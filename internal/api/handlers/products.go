package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/internal/service"
)

// ProductResponse represents the product response
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Brand       string `json:"brand,omitempty"`
	SKU         string `json:"sku"`

	SupplierID   string `json:"supplier_id,omitempty"`
	SupplierName string `json:"supplier_name,omitempty"`

	SupplierPrice    float64 `json:"supplier_price,omitempty"`
	PublicPrice      float64 `json:"public_price"`
	Margin           float64 `json:"margin,omitempty"`
	MarginPercentage float64 `json:"margin_percentage,omitempty"`

	Stock       int  `json:"stock"`
	MinStock    int  `json:"min_stock,omitempty"`
	IsAvailable bool `json:"is_available"`

	Images    []string `json:"images"`
	MainImage string   `json:"main_image,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	Views  int `json:"views,omitempty"`
	Orders int `json:"orders,omitempty"`

	Status   domain.ProductStatus `json:"status"`
	Featured bool                 `json:"featured"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toProductResponse(p *domain.Product, isAdmin bool) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Brand:       p.Brand,
		SKU:         p.SKU,
		PublicPrice: p.PublicPrice,
		Stock:       p.Stock,
		IsAvailable: p.IsAvailable,
		Images:      p.Images,
		MainImage:   p.MainImage,
		Tags:        p.Tags,
		Status:      p.Status,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}

	// Sourcing and margin figures stay inside the back office.
	if isAdmin {
		resp.SupplierID = p.SupplierID.String()
		resp.SupplierName = p.SupplierName
		resp.SupplierPrice = p.SupplierPrice
		resp.Margin = p.Margin
		resp.MarginPercentage = p.MarginPercentage
		resp.MinStock = p.MinStock
		resp.Views = p.Views
		resp.Orders = p.Orders
	}

	return resp
}

func productFilterFromQuery(c *gin.Context, publicOnly bool) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Status:      domain.ProductStatus(c.Query("status")),
		Search:      c.Query("search"),
		InStock:     c.Query("in_stock") == "true",
		Featured:    c.Query("featured") == "true",
		PublicOnly:  publicOnly,
	}
	filter.Page, filter.Limit = paginationParams(c)

	if raw := c.Query("supplier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.SupplierID = &id
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	return filter, nil
}

// HandleListProducts handles both the storefront and back-office listings.
// Storefront callers only ever see active, available products.
func HandleListProducts(services *service.Services, logger *zap.Logger, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := productFilterFromQuery(c, !isAdmin)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid supplier ID")
			return
		}

		products, total, err := services.Products.List(c.Request.Context(), filter)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, p := range products {
			responses[i] = toProductResponse(p, isAdmin)
		}
		respondOK(c, http.StatusOK, listEnvelope(responses, total, filter.Page, filter.Limit))
	}
}

// HandleGetProduct handles GET product by ID for either surface.
func HandleGetProduct(services *service.Services, logger *zap.Logger, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID")
			return
		}

		product, err := services.Products.Get(c.Request.Context(), id, isAdmin)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toProductResponse(product, isAdmin))
	}
}

// HandleCreateProduct handles POST /api/v1/admin/products
func HandleCreateProduct(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		product, err := services.Products.Create(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusCreated, toProductResponse(product, true))
	}
}

// HandleUpdateProduct handles PUT /api/v1/admin/products/:id
func HandleUpdateProduct(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID")
			return
		}

		var req service.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		product, err := services.Products.Update(c.Request.Context(), id, req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toProductResponse(product, true))
	}
}

// HandleDeleteProduct handles DELETE /api/v1/admin/products/:id
func HandleDeleteProduct(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID")
			return
		}

		if err := services.Products.Delete(c.Request.Context(), id); err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondMessage(c, http.StatusOK, "product deactivated")
	}
}

// HandleAdjustStock handles PUT /api/v1/admin/products/:id/stock
func HandleAdjustStock(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product ID")
			return
		}

		var req service.AdjustStockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		product, err := services.Products.AdjustStock(c.Request.Context(), id, req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, toProductResponse(product, true))
	}
}
