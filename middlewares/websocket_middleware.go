package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/utils"
)

// WebSocketAuthMiddleware lets board screens connect anonymously. A token, when given,
// must be valid and upgrades the connection to its role.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.Set("role", "board")
			c.Next()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Next()
	}
}
