package http

import (
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/image"
)

type ByImageIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type ImageResponse struct {
	ID           string    `json:"id"`
	ItemID       int64     `json:"itemId"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	HasThumbnail bool      `json:"hasThumbnail"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewImageResponse(img *image.ItemImage) ImageResponse {
	return ImageResponse{
		ID:           img.ID,
		ItemID:       img.ItemID,
		Filename:     img.Filename,
		ContentType:  img.ContentType,
		Size:         img.Size,
		HasThumbnail: img.ThumbnailPath != nil,
		CreatedAt:    img.CreatedAt,
	}
}
