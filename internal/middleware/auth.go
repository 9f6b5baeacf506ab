package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/models"
	"panda-server/internal/utils"
)

const subjectKey = "subject"

// AuthMiddleware creates a middleware for JWT authentication. An empty secret
// disables the check.
func AuthMiddleware(secret string, tr *localisation.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, tr, models.NewMessage(models.KeyUnauthorized))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, tr, models.NewMessage(models.KeyUnauthorized))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			utils.Unauthorized(c, tr, models.NewMessage(models.KeyUnauthorized))
			c.Abort()
			return
		}

		c.Set(subjectKey, claims.Subject)

		c.Next()
	}
}

// GetSubjectFromContext returns the authenticated token subject.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, exists := c.Get(subjectKey)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}
