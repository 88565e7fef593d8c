package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/internal/repository"
)

// NewConnection opens a Postgres connection pool and verifies it with a ping.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewRepositories wires every Postgres repository implementation.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:  NewProductRepository(db, logger),
		Supplier: NewSupplierRepository(db, logger),
		Order:    NewOrderRepository(db, logger),
		User:     NewUserRepository(db, logger),
		Stats:    NewStatsRepository(db, logger),
	}
}

// isUniqueViolation reports whether err is a violation of the named unique
// constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
