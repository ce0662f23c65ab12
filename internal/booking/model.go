package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrOwnItem          = apperror.New(http.StatusNotFound, "the owner cannot book their own item")
	ErrMissingDates     = apperror.New(http.StatusBadRequest, "booking dates cannot be empty")
	ErrStartInPast      = apperror.New(http.StatusBadRequest, "start date cannot be in the past")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrNotItemOwner     = apperror.New(http.StatusNotFound, "only the item owner can decide on a booking")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "booking status already decided")
	ErrAccessDenied     = apperror.New(http.StatusNotFound, "booking is visible only to the booker or the item owner")
)

// Status is the booking lifecycle state. WAITING is the only non-terminal
// status; it transitions at most once, to APPROVED or REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bounded reservation of an item by a booker.
// Start/End/ItemID/BookerID are immutable after creation; only Status
// changes, and only once.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
}
