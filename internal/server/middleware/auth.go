package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/virtual-router-api/internal/core/domain"
)

// Auth checks for a valid Bearer token in the Authorization header against
// the statically configured keys. An empty key list disables auth entirely,
// which is the expected mode when the router runs as a localhost sidecar.
func Auth(staticKeys []string) gin.HandlerFunc {
	keys := make(map[string]bool, len(staticKeys))
	for _, k := range staticKeys {
		keys[k] = true
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewProblem(
				http.StatusUnauthorized, "Unauthorized", "Missing Authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewProblem(
				http.StatusUnauthorized, "Unauthorized", "Invalid Authorization header format"))
			return
		}

		if !keys[parts[1]] {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewProblem(
				http.StatusUnauthorized, "Unauthorized", "Invalid API key"))
			return
		}

		c.Next()
	}
}
