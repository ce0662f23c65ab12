package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all item-related routes.
// Search is public; everything else requires the identity header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	group.GET("/search", h.Search)

	group.Use(identityMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.ListByOwner)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.POST("/:id/comment", h.CreateComment)
	}
}
