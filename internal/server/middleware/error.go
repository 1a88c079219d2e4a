package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
	"go.uber.org/zap"
)

// ErrorHandler converts errors pushed via c.Error into RFC 9457 problem
// responses. Handlers stay thin: they attach the error and return.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// Rich problem documents pass through as-is.
		if problem, ok := err.(*domain.Problem); ok {
			if problem.Log != nil {
				logger.Error("Request failed", zap.Int("status", problem.Status), zap.Error(problem.Log))
			}
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		// Service-layer errors carry their own status code.
		if svcErr, ok := err.(*domain.Error); ok {
			if svcErr.Log != nil {
				logger.Error("Request failed", zap.Int("status", svcErr.Code), zap.Error(svcErr.Log))
			}
			c.JSON(svcErr.Code, domain.NewProblem(svcErr.Code, http.StatusText(svcErr.Code), svcErr.Message))
			c.Abort()
			return
		}

		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.NewProblem(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
