package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studyhub/internal/pkg/jwt"
	"studyhub/internal/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserIdx = "user_idx"
	CtxRole    = "role"
	CtxGroup   = "group"
)

// JWTAuth authenticates the bearer token and stores the caller's identity in
// the gin context. Every write pipeline starts here.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			c.Abort()
			return
		}

		c.Set(CtxUserIdx, claims.UserIdx)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxGroup, claims.Group)

		c.Next()
	}
}
