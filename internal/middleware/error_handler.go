package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "portfolio_server/pkg/errors"
	"portfolio_server/pkg/response"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			status := apperrors.HTTPStatusFromError(err.Err)
			c.JSON(status, response.Error(err.Error(), nil))
		}
	}
}
