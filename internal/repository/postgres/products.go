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

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

const productColumns = `
	id, name, description, category, subcategory, brand, sku,
	supplier_id, supplier_name, supplier_price, public_price, margin, margin_percentage,
	stock, min_stock, is_available, images, main_image, tags,
	views, orders, status, featured, created_at, updated_at
`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Subcategory, product.Brand, product.SKU,
		product.SupplierID, product.SupplierName,
		product.SupplierPrice, product.PublicPrice, product.Margin, product.MarginPercentage,
		product.Stock, product.MinStock, product.IsAvailable,
		pq.Array(product.Images), product.MainImage, pq.Array(product.Tags),
		product.Views, product.Orders, product.Status, product.Featured,
		product.CreatedAt, product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "products_sku_key") {
			return &errors.ErrConflict{Resource: "product", Reason: "a product with this SKU already exists"}
		}
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sku), sku)
}

func (r *productRepository) scanOne(row *sql.Row, ref string) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Category,
		&product.Subcategory, &product.Brand, &product.SKU,
		&product.SupplierID, &product.SupplierName,
		&product.SupplierPrice, &product.PublicPrice, &product.Margin, &product.MarginPercentage,
		&product.Stock, &product.MinStock, &product.IsAvailable,
		pq.Array(&product.Images), &product.MainImage, pq.Array(&product.Tags),
		&product.Views, &product.Orders, &product.Status, &product.Featured,
		&product.CreatedAt, &product.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err))
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, subcategory = $5, brand = $6, sku = $7,
		    supplier_id = $8, supplier_name = $9,
		    supplier_price = $10, public_price = $11, margin = $12, margin_percentage = $13,
		    stock = $14, min_stock = $15, is_available = $16,
		    images = $17, main_image = $18, tags = $19,
		    status = $20, featured = $21, updated_at = $22
		WHERE id = $1
	`

	product.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Category,
		product.Subcategory, product.Brand, product.SKU,
		product.SupplierID, product.SupplierName,
		product.SupplierPrice, product.PublicPrice, product.Margin, product.MarginPercentage,
		product.Stock, product.MinStock, product.IsAvailable,
		pq.Array(product.Images), product.MainImage, pq.Array(product.Tags),
		product.Status, product.Featured, product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "products_sku_key") {
			return &errors.ErrConflict{Resource: "product", Reason: "a product with this SKU already exists"}
		}
		r.logger.Error("Failed to update product", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}

	return nil
}

// DecrementStock reserves qty units with a conditional update so two
// concurrent orders can never both win the last units. The status flip to
// out_of_stock happens in the same statement.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2,
		    status = CASE WHEN stock - $2 <= 0 AND status = 'active' THEN 'out_of_stock' ELSE status END,
		    is_available = CASE WHEN stock - $2 <= 0 THEN false ELSE is_available END,
		    updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	result, err := r.db.ExecContext(ctx, query, id, qty)
	if err != nil {
		r.logger.Error("Failed to decrement stock", zap.Error(err))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the product vanished or the guard failed; look at which.
		var stock int
		err := r.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
		if err == sql.ErrNoRows {
			return &errors.ErrNotFound{Resource: "product", ID: id.String()}
		}
		if err != nil {
			return err
		}
		return &errors.ErrInsufficientStock{ProductName: id.String(), Requested: qty, Available: stock}
	}

	return nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *productRepository) IncrementOrders(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE products SET orders = orders + 1 WHERE id = $1`, id)
	return err
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.PublicOnly {
		where += " AND status = 'active' AND is_available = true"
	} else if filter.Status != "" {
		where += " AND status = " + arg(string(filter.Status))
	}
	if filter.Category != "" {
		where += " AND category = " + arg(filter.Category)
	}
	if filter.Subcategory != "" {
		where += " AND subcategory = " + arg(filter.Subcategory)
	}
	if filter.SupplierID != nil {
		where += " AND supplier_id = " + arg(*filter.SupplierID)
	}
	if filter.MinPrice != nil {
		where += " AND public_price >= " + arg(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where += " AND public_price <= " + arg(*filter.MaxPrice)
	}
	if filter.InStock {
		where += " AND stock > 0"
	}
	if filter.Featured {
		where += " AND featured = true"
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += " AND (name ILIKE " + p + " OR description ILIKE " + p + " OR sku ILIKE " + p + ")"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count products", zap.Error(err))
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
	query := "SELECT " + productColumns + " FROM products " + where +
		" ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg((page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list products", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Category,
			&product.Subcategory, &product.Brand, &product.SKU,
			&product.SupplierID, &product.SupplierName,
			&product.SupplierPrice, &product.PublicPrice, &product.Margin, &product.MarginPercentage,
			&product.Stock, &product.MinStock, &product.IsAvailable,
			pq.Array(&product.Images), &product.MainImage, pq.Array(&product.Tags),
			&product.Views, &product.Orders, &product.Status, &product.Featured,
			&product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, &product)
	}

	return products, total, rows.Err()
}
