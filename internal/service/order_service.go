package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/notify"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

// Bounded retries for order-number collisions and optimistic-lock conflicts.
const (
	orderNumberAttempts = 3
	updateAttempts      = 3
)

type OrderService struct {
	repos       *repository.Repositories
	gateway     notify.Gateway
	deliveryFee float64
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, gateway notify.Gateway, deliveryFee float64, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:       repos,
		gateway:     gateway,
		deliveryFee: deliveryFee,
		logger:      logger,
	}
}

// Create turns a cart into a persisted order: validate everything first,
// snapshot item prices, fan the items out into per-supplier sub-orders,
// persist the aggregate, reserve stock and notify each supplier. Validation
// is fail-fast: nothing is written until every item has passed.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(req.Items))
	var subOrders []domain.SupplierSubOrder
	subIndex := make(map[uuid.UUID]int)
	supplierCache := make(map[uuid.UUID]*domain.Supplier)

	for _, reqItem := range req.Items {
		product, err := s.repos.Product.GetByID(ctx, reqItem.ProductID)
		if err != nil {
			return nil, err
		}

		if !product.CanBeOrdered() {
			return nil, &errors.ErrUnavailable{Resource: "product", Name: product.Name}
		}

		if product.Stock < reqItem.Quantity {
			return nil, &errors.ErrInsufficientStock{
				ProductName: product.Name,
				Requested:   reqItem.Quantity,
				Available:   product.Stock,
			}
		}

		// Snapshot, frozen at this instant. Later product changes must not
		// leak into the order.
		items = append(items, domain.OrderItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductImage:  product.MainImage,
			SKU:           product.SKU,
			Quantity:      reqItem.Quantity,
			SupplierPrice: product.SupplierPrice,
			PublicPrice:   product.PublicPrice,
			TotalPrice:    product.PublicPrice * float64(reqItem.Quantity),
			SupplierID:    product.SupplierID,
			SupplierName:  product.SupplierName,
		})

		// Group by supplier, first-seen order.
		if _, ok := subIndex[product.SupplierID]; !ok {
			supplier, ok := supplierCache[product.SupplierID]
			if !ok {
				supplier, err = s.repos.Supplier.GetByID(ctx, product.SupplierID)
				if err != nil {
					return nil, err
				}
				supplierCache[product.SupplierID] = supplier
			}
			subIndex[product.SupplierID] = len(subOrders)
			subOrders = append(subOrders, domain.SupplierSubOrder{
				SupplierID:    supplier.ID,
				SupplierName:  supplier.Name,
				SupplierPhone: supplier.Phone,
				Response:      domain.SupplierResponsePending,
			})
		}
		idx := subIndex[product.SupplierID]
		subOrders[idx].Items = append(subOrders[idx].Items, product.ID)
	}

	order := &domain.Order{
		ID:            uuid.New(),
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		DeliveryFee:   s.deliveryFee,
		DeliveryAddress: domain.DeliveryAddress{
			FirstName:    req.DeliveryAddress.FirstName,
			LastName:     req.DeliveryAddress.LastName,
			Phone:        req.DeliveryAddress.Phone,
			Email:        req.DeliveryAddress.Email,
			Address:      req.DeliveryAddress.Address,
			City:         req.DeliveryAddress.City,
			Commune:      req.DeliveryAddress.Commune,
			Landmark:     req.DeliveryAddress.Landmark,
			Instructions: req.DeliveryAddress.Instructions,
		},
		PaymentMethod: req.PaymentMethod,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Suppliers:     subOrders,
		Notes:         req.Notes,
	}
	if order.DeliveryAddress.City == "" {
		order.DeliveryAddress.City = "Conakry"
	}
	order.RecomputeTotals()

	// The unique index owns uniqueness; we just regenerate on collision.
	created := false
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = domain.GenerateOrderNumber()
		err := s.repos.Order.Create(ctx, order)
		if err == nil {
			created = true
			break
		}
		var conflict *errors.ErrConflict
		if stderrors.As(err, &conflict) && conflict.Resource == "order" {
			s.logger.Warn("Order number collision, regenerating",
				zap.String("order_number", order.OrderNumber))
			continue
		}
		return nil, err
	}
	if !created {
		return nil, &errors.ErrOrderNumberExhausted{Attempts: orderNumberAttempts}
	}

	// Stock adjustments after the fact are at-least-once, not exactly-once:
	// a failure here is reported but the created order stands.
	for _, item := range order.Items {
		if err := s.repos.Product.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Failed to decrement stock after order creation",
				zap.String("order_number", order.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
			continue
		}
		if err := s.repos.Product.IncrementOrders(ctx, item.ProductID); err != nil {
			s.logger.Warn("Failed to increment product order counter",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
		}
	}

	s.notifySuppliers(ctx, order)

	// Persist the notification flags; stale here only means another writer
	// already progressed the order, which is fine.
	if err := s.repos.Order.Update(ctx, order); err != nil {
		s.logger.Warn("Failed to persist notification flags",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	return order, nil
}

// notifySuppliers fans the new-order message out to every sub-order. Each
// supplier is isolated: one gateway failure never blocks the others, and
// never fails the order.
func (s *OrderService) notifySuppliers(ctx context.Context, order *domain.Order) {
	data := make([]notify.NewOrderData, len(order.Suppliers))
	for i, sub := range order.Suppliers {
		lines := make([]notify.OrderLine, 0, len(sub.Items))
		for _, item := range order.Items {
			if item.SupplierID == sub.SupplierID {
				lines = append(lines, notify.OrderLine{ProductName: item.ProductName, Quantity: item.Quantity})
			}
		}
		data[i] = notify.NewOrderData{
			OrderNumber:   order.OrderNumber,
			CustomerPhone: order.CustomerPhone,
			Items:         lines,
			Total:         order.Total,
			Address: notify.AddressData{
				FullName: order.DeliveryAddress.FirstName + " " + order.DeliveryAddress.LastName,
				Address:  order.DeliveryAddress.Address,
				City:     order.DeliveryAddress.City,
				Phone:    order.DeliveryAddress.Phone,
			},
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range order.Suppliers {
		i := i
		g.Go(func() error {
			sub := &order.Suppliers[i]
			result, err := s.gateway.Notify(gctx, sub.SupplierPhone, notify.TemplateNewOrder, data[i])
			if err != nil {
				s.logger.Error("Supplier notification failed",
					zap.String("order_number", order.OrderNumber),
					zap.String("supplier", sub.SupplierName),
					zap.Error(err))
				return nil
			}
			sub.NotificationSent = true
			s.logger.Info("Supplier notified",
				zap.String("order_number", order.OrderNumber),
				zap.String("supplier", sub.SupplierName),
				zap.String("message_id", result.MessageID))
			return nil
		})
	}
	_ = g.Wait()
}

// ProcessSupplierResponse records one supplier's reply and re-derives the
// aggregate status. The read-modify-write is guarded by the order's version;
// on a concurrent write it re-reads and retries.
func (s *OrderService) ProcessSupplierResponse(ctx context.Context, orderID, supplierID uuid.UUID, response domain.SupplierResponse) (*domain.Order, error) {
	var lastErr error
	for attempt := 0; attempt < updateAttempts; attempt++ {
		order, err := s.repos.Order.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		previousStatus := order.Status
		if _, err := order.ProcessSupplierResponse(supplierID, response, time.Now()); err != nil {
			return nil, err
		}

		if err := s.repos.Order.Update(ctx, order); err != nil {
			var stale *errors.ErrStale
			if stderrors.As(err, &stale) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.recordSupplierOutcome(ctx, order, supplierID, response)

		if previousStatus != domain.OrderStatusConfirmed && order.Status == domain.OrderStatusConfirmed {
			s.notifyCustomerConfirmed(ctx, order)
		}

		return order, nil
	}
	return nil, lastErr
}

// recordSupplierOutcome folds the response into the supplier's reputation.
// Response time is measured from order creation, in minutes.
func (s *OrderService) recordSupplierOutcome(ctx context.Context, order *domain.Order, supplierID uuid.UUID, response domain.SupplierResponse) {
	supplier, err := s.repos.Supplier.GetByID(ctx, supplierID)
	if err != nil {
		s.logger.Warn("Failed to load supplier for stats update",
			zap.String("supplier_id", supplierID.String()), zap.Error(err))
		return
	}

	responseMinutes := time.Since(order.CreatedAt).Minutes()
	supplier.UpdateStats(response == domain.SupplierResponseConfirmed, responseMinutes)

	if err := s.repos.Supplier.Update(ctx, supplier); err != nil {
		s.logger.Warn("Failed to persist supplier stats",
			zap.String("supplier_id", supplierID.String()), zap.Error(err))
	}
}

func (s *OrderService) notifyCustomerConfirmed(ctx context.Context, order *domain.Order) {
	_, err := s.gateway.Notify(ctx, order.CustomerPhone, notify.TemplateOrderConfirmed,
		notify.OrderConfirmedData{OrderNumber: order.OrderNumber})
	if err != nil {
		s.logger.Error("Customer confirmation notification failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}

// ProcessSupplierReply resolves an inbound SMS reply: the order comes from
// the referenced order number, the supplier from the sender's phone number.
func (s *OrderService) ProcessSupplierReply(ctx context.Context, orderNumber, fromPhone, rawText string) (*domain.Order, error) {
	if !domain.ValidOrderNumber(orderNumber) {
		return nil, &errors.ErrValidation{Message: "invalid order number format"}
	}

	response, ok := domain.ParseSupplierReply(rawText)
	if !ok {
		return nil, &errors.ErrValidation{Message: "unrecognized supplier reply: " + rawText}
	}

	order, err := s.repos.Order.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	from := normalizePhone(fromPhone)
	var supplierID uuid.UUID
	found := false
	for _, sub := range order.Suppliers {
		if normalizePhone(sub.SupplierPhone) == from {
			supplierID = sub.SupplierID
			found = true
			break
		}
	}
	if !found {
		return nil, &errors.ErrNotFound{Resource: "supplier in order", ID: fromPhone}
	}

	return s.ProcessSupplierResponse(ctx, order.ID, supplierID, response)
}

// UpdateStatus applies an admin status change.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus, adminNotes string) (*domain.Order, error) {
	var lastErr error
	for attempt := 0; attempt < updateAttempts; attempt++ {
		order, err := s.repos.Order.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if err := order.UpdateStatus(status, adminNotes); err != nil {
			return nil, err
		}

		if err := s.repos.Order.Update(ctx, order); err != nil {
			var stale *errors.ErrStale
			if stderrors.As(err, &stale) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return order, nil
	}
	return nil, lastErr
}

// ConfirmPayment marks an order paid, independent of its fulfilment status.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID uuid.UUID, reference string) (*domain.Order, error) {
	var lastErr error
	for attempt := 0; attempt < updateAttempts; attempt++ {
		order, err := s.repos.Order.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}

		order.ConfirmPayment(reference)

		if err := s.repos.Order.Update(ctx, order); err != nil {
			var stale *errors.ErrStale
			if stderrors.As(err, &stale) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return order, nil
	}
	return nil, lastErr
}

// Get returns one order by ID.
func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, orderID)
}

// List returns orders matching the filter plus the unpaged total.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error) {
	return s.repos.Order.List(ctx, filter)
}
