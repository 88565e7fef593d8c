package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
)

type SupplierService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(repos *repository.Repositories, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		repos:  repos,
		logger: logger,
	}
}

// Create registers a supplier. The phone number is the identity used to
// match inbound SMS replies, so it must be unique across suppliers.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*domain.Supplier, error) {
	supplier := &domain.Supplier{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       normalizePhone(req.Phone),
		WhatsApp:    normalizePhone(req.WhatsApp),
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
		Categories:  req.Categories,
		Rating:      0,
		IsActive:    true,
	}
	if supplier.City == "" {
		supplier.City = "Conakry"
	}

	if err := s.repos.Supplier.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// Update applies a partial supplier update. Reputation counters are owned by
// the order workflow and cannot be edited here.
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*domain.Supplier, error) {
	supplier, err := s.repos.Supplier.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		supplier.Phone = normalizePhone(*req.Phone)
	}
	if req.WhatsApp != nil {
		supplier.WhatsApp = normalizePhone(*req.WhatsApp)
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.City != nil {
		supplier.City = *req.City
	}
	if req.Description != nil {
		supplier.Description = *req.Description
	}
	if req.Categories != nil {
		supplier.Categories = req.Categories
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.repos.Supplier.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// Deactivate soft-disables a supplier so it stops receiving new orders.
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.repos.Supplier.GetByID(ctx, id)
	if err != nil {
		return err
	}

	supplier.Deactivate()
	return s.repos.Supplier.Update(ctx, supplier)
}

// Get returns one supplier.
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	return s.repos.Supplier.GetByID(ctx, id)
}

// List returns suppliers matching the filter plus the unpaged total.
func (s *SupplierService) List(ctx context.Context, filter repository.SupplierFilter) ([]*domain.Supplier, int, error) {
	return s.repos.Supplier.List(ctx, filter)
}

// normalizePhone strips spacing so stored numbers compare byte-for-byte with
// webhook sender IDs.
func normalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}
