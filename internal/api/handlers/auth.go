package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/service"
)

// HandleLogin handles POST /api/v1/auth/login
func HandleLogin(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		token, user, err := services.Auth.Login(c.Request.Context(), req)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		respondOK(c, http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":         user.ID.String(),
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"role":       user.Role,
			},
		})
	}
}
