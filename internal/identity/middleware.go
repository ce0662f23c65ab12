package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the id of the user performing the request.
// Authentication itself happens upstream; this service trusts the header.
const UserIDHeader = "X-Sharer-User-Id"

const contextUserIDKey = "identityUserID"

// Required is a Gin middleware that extracts the caller's user id from the
// X-Sharer-User-Id header. Requests without a valid header are rejected.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(UserIDHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + UserIDHeader + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id < 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + UserIDHeader + " header",
			})
			return
		}

		c.Set(contextUserIDKey, id)

		c.Next()
	}
}
