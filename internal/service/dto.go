package service

import (
	"github.com/google/uuid"

	"github.com/fashop/marketplace-api/internal/domain"
)

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	CustomerEmail   string                 `json:"customer_email" binding:"required,email"`
	CustomerPhone   string                 `json:"customer_phone" binding:"required"`
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress DeliveryAddressRequest `json:"delivery_address" binding:"required"`
	PaymentMethod   domain.PaymentMethod   `json:"payment_method" binding:"required,oneof=orange_money card cash"`
	Notes           string                 `json:"notes"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type DeliveryAddressRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address" binding:"required"`
	City         string `json:"city"`
	Commune      string `json:"commune"`
	Landmark     string `json:"landmark"`
	Instructions string `json:"instructions"`
}

// SupplierResponseRequest records a supplier's confirm/reject answer
type SupplierResponseRequest struct {
	SupplierID uuid.UUID               `json:"supplier_id" binding:"required"`
	Response   domain.SupplierResponse `json:"response" binding:"required,oneof=confirmed rejected"`
}

// UpdateOrderStatusRequest is the admin status-change payload
type UpdateOrderStatusRequest struct {
	Status     domain.OrderStatus `json:"status" binding:"required"`
	AdminNotes string             `json:"admin_notes"`
}

// ConfirmPaymentRequest marks an order paid
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference"`
}

// CreateProductRequest is the admin product-creation payload
type CreateProductRequest struct {
	Name          string    `json:"name" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	Category      string    `json:"category" binding:"required"`
	Subcategory   string    `json:"subcategory"`
	Brand         string    `json:"brand"`
	SKU           string    `json:"sku" binding:"required,min=3"`
	SupplierID    uuid.UUID `json:"supplier_id" binding:"required"`
	SupplierPrice float64   `json:"supplier_price" binding:"min=0"`
	PublicPrice   float64   `json:"public_price" binding:"min=0"`
	Stock         int       `json:"stock" binding:"min=0"`
	MinStock      int       `json:"min_stock" binding:"min=0"`
	Images        []string  `json:"images"`
	MainImage     string    `json:"main_image"`
	Tags          []string  `json:"tags"`
	Featured      bool      `json:"featured"`
}

// UpdateProductRequest carries partial product updates; nil fields are left
// untouched.
type UpdateProductRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Category      *string    `json:"category"`
	Subcategory   *string    `json:"subcategory"`
	Brand         *string    `json:"brand"`
	SKU           *string    `json:"sku"`
	SupplierID    *uuid.UUID `json:"supplier_id"`
	SupplierPrice *float64   `json:"supplier_price"`
	PublicPrice   *float64   `json:"public_price"`
	MinStock      *int       `json:"min_stock"`
	Images        []string   `json:"images"`
	MainImage     *string    `json:"main_image"`
	Tags          []string   `json:"tags"`
	Status        *domain.ProductStatus `json:"status"`
	Featured      *bool      `json:"featured"`
}

// AdjustStockRequest is the admin stock-mutation payload
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity" binding:"required"`
	Operation string `json:"operation" binding:"required,oneof=set add subtract"`
}

// CreateSupplierRequest is the admin supplier-creation payload
type CreateSupplierRequest struct {
	Name        string   `json:"name" binding:"required"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Phone       string   `json:"phone" binding:"required"`
	WhatsApp    string   `json:"whatsapp"`
	Address     string   `json:"address" binding:"required"`
	City        string   `json:"city"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// UpdateSupplierRequest carries partial supplier updates.
type UpdateSupplierRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	WhatsApp    *string  `json:"whatsapp"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Description *string  `json:"description"`
	Categories  []string `json:"categories"`
	IsActive    *bool    `json:"is_active"`
}

// LoginRequest authenticates a dashboard user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
