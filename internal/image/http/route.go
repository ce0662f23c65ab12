package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers image routes under both the item and image
// prefixes. Downloads are public, mutations require the identity header.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	{
		items.GET("/:id/images", h.ListByItem)
		items.POST("/:id/images", identityMiddleware, h.Upload)
	}

	images := g.Group("/images")
	{
		images.GET("/:id", h.Download)
		images.GET("/:id/thumbnail", h.DownloadThumbnail)
		images.DELETE("/:id", identityMiddleware, h.Delete)
	}
}
