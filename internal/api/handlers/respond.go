package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Timmydavid123/server/internal/api/middleware"
	"github.com/Timmydavid123/server/pkg/errors"
)

// classify maps err to a status and public message, logging server-side
// failures with full detail.
func classify(c *gin.Context, logger *zap.Logger, msg string, err error) (int, string) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		logger.Error(msg,
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
		)
	}
	return status, errors.PublicMessage(err)
}
