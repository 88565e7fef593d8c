package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fashop/marketplace-api/internal/service"
)

// SMSReplyRequest is the inbound webhook payload from the SMS provider.
type SMSReplyRequest struct {
	From        string `json:"from" binding:"required"`
	Text        string `json:"text" binding:"required"`
	OrderNumber string `json:"order_number" binding:"required"`
}

// HandleSMSReply handles POST /api/v1/webhooks/sms-response. The raw reply
// text is interpreted here and nowhere else; the rest of the system only ever
// sees a confirmed or rejected response.
func HandleSMSReply(services *service.Services, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SMSReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		order, err := services.Orders.ProcessSupplierReply(c.Request.Context(), req.OrderNumber, req.From, req.Text)
		if err != nil {
			respondServiceError(c, logger, err)
			return
		}

		logger.Info("Supplier SMS reply processed",
			zap.String("order_number", req.OrderNumber),
			zap.String("from", req.From),
			zap.String("order_status", string(order.Status)))

		respondOK(c, http.StatusOK, gin.H{
			"order_number": order.OrderNumber,
			"order_status": order.Status,
		})
	}
}
