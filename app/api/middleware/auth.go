package middleware

import (
	"github.com/gin-gonic/gin"

	ctx2 "taskhub/app/api/ctx"
	"taskhub/app/internal/response"
	"taskhub/app/pkg/jwt"
)

// Auth rejects requests without a verified session token.
func Auth(j *jwt.Jwt) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := ctx2.ValidateBearerToken(c, j); err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
