// Package ctx carries the verified actor identity through a request.
package ctx

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/app/internal/errcode"
	"taskhub/app/pkg/jwt"
)

const keyUserId = "auth.userId"
const keyEmail = "auth.email"

// ValidateBearerToken verifies the Authorization header against the
// session token verifier and stores the identity on the request.
func ValidateBearerToken(c *gin.Context, j *jwt.Jwt) (*jwt.TokenPayload, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errcode.ErrUnauthorized.New("missing bearer token")
	}
	payload, err := j.ValidateToken(token)
	if err != nil {
		return nil, errcode.ErrUnauthorized.Wrap(err)
	}
	c.Set(keyUserId, payload.UserID)
	c.Set(keyEmail, payload.Email)
	return payload, nil
}

// UserId returns the verified actor id, empty when unauthenticated.
func UserId(c *gin.Context) string {
	return c.GetString(keyUserId)
}

func Email(c *gin.Context) string {
	return c.GetString(keyEmail)
}
