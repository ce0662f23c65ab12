package image

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "image not found")
	ErrNotOwner    = apperror.New(http.StatusNotFound, "image not found")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// ItemImage is a picture attached to an item by its owner.
type ItemImage struct {
	ID            string
	ItemID        int64
	UploaderID    int64
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}
