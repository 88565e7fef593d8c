package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/auth"
)

const claimsContextKey = "auth_claims"

// AuthMiddleware verifies the Bearer token and stores its claims in the
// request context.
func AuthMiddleware(jwtSecret string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		claims, err := auth.ParseToken(jwtSecret, parts[1])
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err))
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"message": message}})
	c.Abort()
}

// GetClaimsFromContext returns the authenticated user's claims.
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
