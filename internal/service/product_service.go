package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/notify"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

type ProductService struct {
	repos   *repository.Repositories
	gateway notify.Gateway
	logger  *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repos *repository.Repositories, gateway notify.Gateway, logger *zap.Logger) *ProductService {
	return &ProductService{
		repos:   repos,
		gateway: gateway,
		logger:  logger,
	}
}

// Create adds a catalog entry. The supplier must exist; its name is
// denormalized onto the product so listings never need a join.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	supplier, err := s.repos.Supplier.GetByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Brand:         req.Brand,
		SKU:           strings.ToUpper(strings.TrimSpace(req.SKU)),
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		SupplierPrice: req.SupplierPrice,
		PublicPrice:   req.PublicPrice,
		MinStock:      req.MinStock,
		Images:        req.Images,
		MainImage:     req.MainImage,
		Tags:          req.Tags,
		Status:        domain.ProductStatusDraft,
		Featured:      req.Featured,
		IsAvailable:   true,
	}
	if product.MinStock == 0 {
		product.MinStock = 1
	}
	if product.MainImage == "" && len(product.Images) > 0 {
		product.MainImage = product.Images[0]
	}
	product.RecomputeMargin()
	product.SetStock(req.Stock)

	if err := s.repos.Product.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Update applies a partial update and refreshes derived fields when either
// price moved.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*domain.Product, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.SKU != nil {
		product.SKU = strings.ToUpper(strings.TrimSpace(*req.SKU))
	}
	if req.SupplierID != nil && *req.SupplierID != product.SupplierID {
		supplier, err := s.repos.Supplier.GetByID(ctx, *req.SupplierID)
		if err != nil {
			return nil, err
		}
		product.SupplierID = supplier.ID
		product.SupplierName = supplier.Name
	}

	priceChanged := false
	if req.SupplierPrice != nil && *req.SupplierPrice != product.SupplierPrice {
		product.SupplierPrice = *req.SupplierPrice
		priceChanged = true
	}
	if req.PublicPrice != nil && *req.PublicPrice != product.PublicPrice {
		product.PublicPrice = *req.PublicPrice
		priceChanged = true
	}
	if priceChanged {
		product.RecomputeMargin()
	}

	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.MainImage != nil {
		product.MainImage = *req.MainImage
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, &errors.ErrValidation{Message: "invalid product status: " + string(*req.Status)}
		}
		product.Status = *req.Status
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete soft-deletes: the product drops out of the storefront but order
// history keeps resolving it.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	return s.repos.Product.Update(ctx, product)
}

// AdjustStock applies an admin stock mutation and fires a low-stock alert to
// the supplier when the adjustment leaves the product at or below its
// reorder threshold. The alert is best-effort.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*domain.Product, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch req.Operation {
	case "set":
		product.SetStock(req.Quantity)
	case "add":
		product.ApplyStockDelta(req.Quantity)
	case "subtract":
		product.ApplyStockDelta(-req.Quantity)
	default:
		return nil, &errors.ErrValidation{Message: "invalid stock operation: " + req.Operation}
	}

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return nil, err
	}

	if product.IsLowStock() {
		s.alertLowStock(ctx, product)
	}

	return product, nil
}

func (s *ProductService) alertLowStock(ctx context.Context, product *domain.Product) {
	supplier, err := s.repos.Supplier.GetByID(ctx, product.SupplierID)
	if err != nil {
		s.logger.Warn("Failed to load supplier for low-stock alert",
			zap.String("product_id", product.ID.String()), zap.Error(err))
		return
	}

	_, err = s.gateway.Notify(ctx, supplier.Phone, notify.TemplateLowStock, notify.LowStockData{
		ProductName: product.Name,
		Stock:       product.Stock,
		MinStock:    product.MinStock,
	})
	if err != nil {
		s.logger.Error("Low-stock alert failed",
			zap.String("product_id", product.ID.String()),
			zap.String("supplier", supplier.Name),
			zap.Error(err))
	}
}

// Get returns one product. Non-admin callers only see active, available
// products; storefront views count towards the product's view counter.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID, isAdmin bool) (*domain.Product, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if !product.CanBeOrdered() {
			return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
		}
		if err := s.repos.Product.IncrementViews(ctx, id); err != nil {
			s.logger.Warn("Failed to increment product views",
				zap.String("product_id", id.String()), zap.Error(err))
		}
	}

	return product, nil
}

// List returns products matching the filter plus the unpaged total.
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	return s.repos.Product.List(ctx, filter)
}
