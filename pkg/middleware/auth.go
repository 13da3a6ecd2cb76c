package middleware

import (
	"net/http"
	"strings"

	"hotel-ops/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID  = "user_id"
	ContextRole    = "role"
	ContextHotelID = "hotel_id"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		if claims.HotelID != nil {
			c.Set(ContextHotelID, *claims.HotelID)
		}
		c.Next()
	}
}

// RequireRole rejects callers whose token role is not in roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// HotelScope returns the hotel a token is confined to, if any.
func HotelScope(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextHotelID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
