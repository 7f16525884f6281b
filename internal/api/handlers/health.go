package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/service"
)

func HandleHealth(diag *service.DiagnosticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, diag.Health())
	}
}

// HandleTestEmail sends a diagnostic message to the admin address.
// The relay summary is returned on both outcomes and never carries the
// password.
func HandleTestEmail(diag *service.DiagnosticsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary := diag.SMTPSummary()

		messageID, err := diag.SendTestEmail(c.Request.Context())
		if err != nil {
			_, public := classify(c, logger, "Test email failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":    false,
				"error":      public,
				"smtpConfig": summary,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Test email sent successfully",
			"messageId":  messageID,
			"smtpConfig": summary,
		})
	}
}
