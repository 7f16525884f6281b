package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/service"
)

func HandleSendReceipt(receipts *service.ReceiptService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.ReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidBodyMessage})
			return
		}

		if err := receipts.Send(c.Request.Context(), req); err != nil {
			status, public := classify(c, logger, "Failed to send receipt", err)
			c.JSON(status, gin.H{"error": public})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Receipt sent successfully",
			"orderId": req.OrderID,
		})
	}
}
