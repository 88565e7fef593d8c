package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/config"
	"github.com/fashop/marketplace-api/internal/notify"
	"github.com/fashop/marketplace-api/internal/repository"
)

// Services bundles every service behind one injection point, mirroring
// repository.Repositories.
type Services struct {
	Orders    *OrderService
	Products  *ProductService
	Suppliers *SupplierService
	Stats     *StatsService
	Auth      *AuthService
}

// NewServices wires the full service layer. cache may be nil.
func NewServices(cfg *config.Config, repos *repository.Repositories, gateway notify.Gateway, cache *redis.Client, logger *zap.Logger) *Services {
	return &Services{
		Orders:    NewOrderService(repos, gateway, cfg.Orders.DeliveryFee, logger),
		Products:  NewProductService(repos, gateway, logger),
		Suppliers: NewSupplierService(repos, logger),
		Stats:     NewStatsService(repos, cache, logger),
		Auth:      NewAuthService(repos, cfg.Auth, logger),
	}
}
