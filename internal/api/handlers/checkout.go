package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/service"
)

const (
	invalidBodyMessage      = "Invalid request body"
	invalidSessionIDMessage = "Invalid session ID"
)

// HandleCreateCheckoutSession opens a hosted checkout session for the cart
func HandleCreateCheckoutSession(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidBodyMessage})
			return
		}

		session, err := checkout.Create(c.Request.Context(), req)
		if err != nil {
			status, public := classify(c, logger, "Failed to create checkout session", err)
			c.JSON(status, gin.H{"error": public})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": session.ID, "url": session.URL})
	}
}

// HandleVerifyPayment reports the payment state of a checkout session
func HandleVerifyPayment(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := c.QueryArray("session_id")
		if len(ids) > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidSessionIDMessage})
			return
		}
		sessionID := ""
		if len(ids) == 1 {
			sessionID = ids[0]
		}

		verification, err := checkout.Verify(c.Request.Context(), sessionID)
		if err != nil {
			status, public := classify(c, logger, "Failed to verify payment", err)
			c.JSON(status, gin.H{"error": public})
			return
		}

		c.JSON(http.StatusOK, verification)
	}
}
