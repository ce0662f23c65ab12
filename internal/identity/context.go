package identity

import "github.com/gin-gonic/gin"

// GetUserID returns the requesting user's id or 0 when no identity is set.
func GetUserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
