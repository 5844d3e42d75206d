package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gin-gorm-shop/internal/core/auth"
	resp "gin-gorm-shop/internal/transport/http/response"
)

// gin.Context 里的 key
const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyEmail  = "email"
)

// AuthJWT 只接受 access token
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")), auth.TypeAccess)
		if err != nil {
			resp.Abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyEmail, claims.Email)
		c.Next()
	}
}
