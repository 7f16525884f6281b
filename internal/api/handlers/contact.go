package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/domain"
	"github.com/Timmydavid123/server/internal/service"
	"github.com/Timmydavid123/server/pkg/errors"
)

const (
	contactSuccessMessage = "Message sent successfully"
	contactSendFailure    = "Failed to send message. Please try again later."
)

func HandleContact(contact *service.ContactService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg domain.ContactMessage
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": service.MsgContactFieldsRequired})
			return
		}

		if err := contact.Submit(c.Request.Context(), msg); err != nil {
			status, public := classify(c, logger, "Contact form failed", err)
			var upstream *errors.ErrUpstream
			if stderrors.As(err, &upstream) {
				public = contactSendFailure
			}
			c.JSON(status, gin.H{"success": false, "error": public})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": contactSuccessMessage})
	}
}
