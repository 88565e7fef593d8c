package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/pkg/errors"
)

// respondOK writes a {success:true, data} envelope.
func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondMessage writes a data-less success envelope.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": gin.H{"message": message}})
}

// respondServiceError maps a typed service error onto its HTTP status. Errors
// with no mapping are logged and hidden behind a generic 500.
func respondServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation   *errors.ErrValidation
		notFound     *errors.ErrNotFound
		conflict     *errors.ErrConflict
		unavailable  *errors.ErrUnavailable
		noStock      *errors.ErrInsufficientStock
		unauthorized *errors.ErrUnauthorized
		stale        *errors.ErrStale
		exhausted    *errors.ErrOrderNumberExhausted
	)

	switch {
	case stderrors.As(err, &validation):
		respondError(c, http.StatusBadRequest, validation.Error())
	case stderrors.As(err, &notFound):
		respondError(c, http.StatusNotFound, notFound.Error())
	case stderrors.As(err, &conflict):
		respondError(c, http.StatusConflict, conflict.Error())
	case stderrors.As(err, &unavailable):
		respondError(c, http.StatusUnprocessableEntity, unavailable.Error())
	case stderrors.As(err, &noStock):
		respondError(c, http.StatusUnprocessableEntity, noStock.Error())
	case stderrors.As(err, &unauthorized):
		respondError(c, http.StatusUnauthorized, unauthorized.Error())
	case stderrors.As(err, &stale):
		respondError(c, http.StatusConflict, "order was modified concurrently, please retry")
	case stderrors.As(err, &exhausted):
		logger.Error("Order number space exhausted", zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, "could not allocate an order number, please retry")
	default:
		logger.Error("Unhandled service error",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

// paginationParams reads page/limit query values with sane bounds.
func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// listEnvelope is the data payload for paginated listings.
func listEnvelope(items interface{}, total, page, limit int) gin.H {
	return gin.H{
		"items": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
}
