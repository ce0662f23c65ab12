package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound        = apperror.New(http.StatusNotFound, "user not found")
	ErrNotOwner            = apperror.New(http.StatusNotFound, "only the item owner can edit the item")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "item name cannot be empty")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "item description cannot be empty")
	ErrAvailableRequired   = apperror.New(http.StatusBadRequest, "item availability flag is required")
	ErrEmptyComment        = apperror.New(http.StatusBadRequest, "comment text cannot be empty")
	ErrNoFinishedBooking   = apperror.New(http.StatusBadRequest, "user has no finished booking of this item")
)

// Item is a physical thing shared by its owner. The Available flag gates
// whether new bookings are accepted for it.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
}

// Comment is feedback left by a user who finished renting the item.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingRef is the minimal booking reference exposed in the owner's item
// view as the last/next booking summary.
type BookingRef struct {
	ID       int64
	BookerID int64
}

// ApprovedBooking is the slice of booking data the availability summary
// operates on.
type ApprovedBooking struct {
	ID       int64
	ItemID   int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// Details is the item view returned to a viewer: the item, its comments and,
// for the owner only, the last/next booking summary.
type Details struct {
	Item
	LastBooking *BookingRef
	NextBooking *BookingRef
	Comments    []Comment
}
