package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
	"github.com/fashop/marketplace-api/internal/repository"
	"github.com/fashop/marketplace-api/pkg/errors"
)

type supplierRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *sql.DB, logger *zap.Logger) *supplierRepository {
	return &supplierRepository{
		db:     db,
		logger: logger,
	}
}

const supplierColumns = `
	id, name, email, phone, whatsapp, address, city, description,
	rating, total_orders, successful_orders, average_response_time,
	is_active, categories, created_at, updated_at
`

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	now := time.Now()
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = now
	}
	supplier.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.WhatsApp,
		supplier.Address, supplier.City, supplier.Description,
		supplier.Rating, supplier.TotalOrders, supplier.SuccessfulOrders, supplier.AverageResponseTime,
		supplier.IsActive, pq.Array(supplier.Categories),
		supplier.CreatedAt, supplier.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "suppliers_phone_key") {
			return &errors.ErrConflict{Resource: "supplier", Reason: "a supplier with this phone number already exists"}
		}
		r.logger.Error("Failed to create supplier", zap.Error(err))
		return err
	}

	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	var supplier domain.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&supplier.ID, &supplier.Name, &supplier.Email, &supplier.Phone, &supplier.WhatsApp,
		&supplier.Address, &supplier.City, &supplier.Description,
		&supplier.Rating, &supplier.TotalOrders, &supplier.SuccessfulOrders, &supplier.AverageResponseTime,
		&supplier.IsActive, pq.Array(&supplier.Categories),
		&supplier.CreatedAt, &supplier.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "supplier", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get supplier by ID", zap.Error(err))
		return nil, err
	}

	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, email = $3, phone = $4, whatsapp = $5, address = $6, city = $7,
		    description = $8, rating = $9, total_orders = $10, successful_orders = $11,
		    average_response_time = $12, is_active = $13, categories = $14, updated_at = $15
		WHERE id = $1
	`

	supplier.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.WhatsApp,
		supplier.Address, supplier.City, supplier.Description,
		supplier.Rating, supplier.TotalOrders, supplier.SuccessfulOrders, supplier.AverageResponseTime,
		supplier.IsActive, pq.Array(supplier.Categories), supplier.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "suppliers_phone_key") {
			return &errors.ErrConflict{Resource: "supplier", Reason: "a supplier with this phone number already exists"}
		}
		r.logger.Error("Failed to update supplier", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "supplier", ID: supplier.ID.String()}
	}

	return nil
}

func (r *supplierRepository) List(ctx context.Context, filter repository.SupplierFilter) ([]*domain.Supplier, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += " AND (name ILIKE " + p + " OR phone ILIKE " + p + " OR email ILIKE " + p + ")"
	}
	if filter.IsActive != nil {
		where += " AND is_active = " + arg(*filter.IsActive)
	}
	if filter.Category != "" {
		where += " AND " + arg(filter.Category) + " = ANY(categories)"
	}
	if filter.City != "" {
		where += " AND city ILIKE " + arg("%"+filter.City+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers "+where, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count suppliers", zap.Error(err))
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
	query := "SELECT " + supplierColumns + " FROM suppliers " + where +
		" ORDER BY rating DESC, name ASC LIMIT " + arg(limit) + " OFFSET " + arg((page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list suppliers", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		var supplier domain.Supplier
		err := rows.Scan(
			&supplier.ID, &supplier.Name, &supplier.Email, &supplier.Phone, &supplier.WhatsApp,
			&supplier.Address, &supplier.City, &supplier.Description,
			&supplier.Rating, &supplier.TotalOrders, &supplier.SuccessfulOrders, &supplier.AverageResponseTime,
			&supplier.IsActive, pq.Array(&supplier.Categories),
			&supplier.CreatedAt, &supplier.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan supplier row", zap.Error(err))
			return nil, 0, err
		}
		suppliers = append(suppliers, &supplier)
	}

	return suppliers, total, rows.Err()
}
