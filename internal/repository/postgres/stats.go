package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/domain"
)

type statsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB, logger *zap.Logger) *statsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// Dashboard aggregates the admin overview. Revenue is the platform margin on
// paid orders, the figure the business actually keeps.
func (r *statsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	overview := `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COUNT(*) FROM products WHERE status = 'active'),
			(SELECT COUNT(*) FROM suppliers WHERE is_active = true),
			COALESCE((SELECT SUM(total_margin) FROM orders WHERE payment_status = 'paid'), 0),
			COALESCE((SELECT SUM(total_margin) FROM orders
				WHERE payment_status = 'paid' AND created_at >= date_trunc('month', NOW())), 0)
	`
	err := r.db.QueryRowContext(ctx, overview).Scan(
		&stats.TotalOrders, &stats.PendingOrders,
		&stats.ActiveProducts, &stats.ActiveSuppliers,
		&stats.TotalRevenue, &stats.MonthlyRevenue,
	)
	if err != nil {
		r.logger.Error("Failed to load dashboard overview", zap.Error(err))
		return nil, err
	}

	topProducts := `
		SELECT (item->>'product_id')::uuid,
		       item->>'product_name',
		       SUM((item->>'quantity')::int),
		       SUM((item->>'total_price')::numeric)
		FROM orders, jsonb_array_elements(items) AS item
		GROUP BY 1, 2
		ORDER BY 3 DESC
		LIMIT 5
	`
	rows, err := r.db.QueryContext(ctx, topProducts)
	if err != nil {
		r.logger.Error("Failed to load top products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, err
		}
		stats.TopProducts = append(stats.TopProducts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topSuppliers := `
		SELECT id, name, rating, total_orders, successful_orders
		FROM suppliers
		WHERE is_active = true
		ORDER BY rating DESC, total_orders DESC
		LIMIT 5
	`
	srows, err := r.db.QueryContext(ctx, topSuppliers)
	if err != nil {
		r.logger.Error("Failed to load top suppliers", zap.Error(err))
		return nil, err
	}
	defer srows.Close()

	for srows.Next() {
		var s domain.SupplierRank
		if err := srows.Scan(&s.SupplierID, &s.Name, &s.Rating, &s.TotalOrders, &s.SuccessfulOrders); err != nil {
			return nil, err
		}
		stats.TopSuppliers = append(stats.TopSuppliers, s)
	}

	return stats, srows.Err()
}
