package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

// The order row is the whole aggregate: items, sub-orders and the delivery
// address live in JSONB columns so one INSERT or UPDATE writes everything
// atomically; there is never a partial aggregate on disk.
type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

const orderColumns = `
	id, order_number, customer_email, customer_phone, items,
	subtotal, delivery_fee, total, total_margin,
	delivery_address, payment_method, status, payment_status, payment_reference,
	suppliers, notes, admin_notes, version, created_at, updated_at
`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, address, suppliers, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	order.Version = 1

	_, err = r.db.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.CustomerEmail, order.CustomerPhone, items,
		order.Subtotal, order.DeliveryFee, order.Total, order.TotalMargin,
		address, order.PaymentMethod, order.Status, order.PaymentStatus, order.PaymentReference,
		suppliers, order.Notes, order.AdminNotes, order.Version,
		order.CreatedAt, order.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return &errors.ErrConflict{Resource: "order", Reason: "order number collision"}
		}
		r.logger.Error("Failed to create order", zap.Error(err))
		return err
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, orderNumber), orderNumber)
}

func (r *orderRepository) scanOne(row *sql.Row, ref string) (*domain.Order, error) {
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

// Update writes the aggregate back guarded by the version it was read at.
// A concurrent writer bumps the version first, the guard fails, and the
// caller gets ErrStale to re-read and retry.
func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	items, address, suppliers, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET customer_email = $3, customer_phone = $4, items = $5,
		    subtotal = $6, delivery_fee = $7, total = $8, total_margin = $9,
		    delivery_address = $10, payment_method = $11, status = $12,
		    payment_status = $13, payment_reference = $14,
		    suppliers = $15, notes = $16, admin_notes = $17,
		    version = version + 1, updated_at = $18
		WHERE id = $1 AND version = $2
	`

	order.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		order.ID, order.Version,
		order.CustomerEmail, order.CustomerPhone, items,
		order.Subtotal, order.DeliveryFee, order.Total, order.TotalMargin,
		address, order.PaymentMethod, order.Status,
		order.PaymentStatus, order.PaymentReference,
		suppliers, order.Notes, order.AdminNotes,
		order.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to update order", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, order.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return &errors.ErrNotFound{Resource: "order", ID: order.ID.String()}
		}
		return &errors.ErrStale{Resource: "order", ID: order.ID.String()}
	}

	order.Version++
	return nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where += " AND status = " + arg(string(filter.Status))
	}
	if filter.PaymentStatus != "" {
		where += " AND payment_status = " + arg(string(filter.PaymentStatus))
	}
	if filter.SupplierID != nil {
		where += " AND suppliers @> " + arg(fmt.Sprintf(`[{"supplier_id":"%s"}]`, filter.SupplierID))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += " AND (order_number ILIKE " + p + " OR customer_email ILIKE " + p + " OR customer_phone ILIKE " + p + ")"
	}
	if filter.DateFrom != nil {
		where += " AND created_at >= " + arg(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		where += " AND created_at <= " + arg(*filter.DateTo)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count orders", zap.Error(err))
		return nil, 0, err
	}

	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	query := "SELECT " + orderColumns + " FROM orders " + where +
		" ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg((page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			r.logger.Error("Failed to scan order row", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, rows.Err()
}

func marshalOrderDocs(order *domain.Order) (items, address, suppliers []byte, err error) {
	if items, err = json.Marshal(order.Items); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal order items: %w", err)
	}
	if address, err = json.Marshal(order.DeliveryAddress); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal delivery address: %w", err)
	}
	if suppliers, err = json.Marshal(order.Suppliers); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal sub-orders: %w", err)
	}
	return items, address, suppliers, nil
}

func scanOrder(scan func(...interface{}) error) (*domain.Order, error) {
	var order domain.Order
	var items, address, suppliers []byte

	err := scan(
		&order.ID, &order.OrderNumber, &order.CustomerEmail, &order.CustomerPhone, &items,
		&order.Subtotal, &order.DeliveryFee, &order.Total, &order.TotalMargin,
		&address, &order.PaymentMethod, &order.Status, &order.PaymentStatus, &order.PaymentReference,
		&suppliers, &order.Notes, &order.AdminNotes, &order.Version,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(address, &order.DeliveryAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delivery address: %w", err)
	}
	if err := json.Unmarshal(suppliers, &order.Suppliers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sub-orders: %w", err)
	}

	return &order, nil
}
