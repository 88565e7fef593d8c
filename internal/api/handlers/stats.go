package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/service"
)

// HandleDashboardStats handles GET /api/v1/admin/stats/dashboard
func HandleDashboardStats(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := services.Stats.Dashboard(c.Request.Context())
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, stats)
	}
}
