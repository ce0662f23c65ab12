package booking

import (
	"context"
	"errors"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/item"
	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/clock"
	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

// CreateRequest carries the booking creation input. Dates are pointers so
// the service can reject requests where either one is missing.
type CreateRequest struct {
	ItemID int64
	Start  *time.Time
	End    *time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	// Decide approves or rejects a WAITING booking. Only the item owner may
	// decide, and only once per booking.
	Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error)
	// GetByID returns the booking to its booker or the item owner.
	GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, state string) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state string) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users user.Service
	items item.Service
	clk   clock.Clock
}

func NewService(repo Repository, users user.Service, items item.Service, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		clk:   clk,
	}
}

// Create validates the booking preconditions in a fixed order and persists a
// WAITING booking. Overlapping bookings of the same item are deliberately
// not rejected; approval is the owner's call.
func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if !it.Available {
		return nil, ErrItemUnavailable
	}

	// Not-found rather than forbidden, so owners and strangers cannot be
	// told apart by the error kind.
	if it.OwnerID == bookerID {
		return nil, ErrOwnItem
	}

	if req.Start == nil || req.End == nil {
		return nil, ErrMissingDates
	}
	if req.Start.Before(s.clk.Now()) {
		return nil, ErrStartInPast
	}
	if !req.End.After(*req.Start) {
		return nil, ErrInvalidTimeRange
	}

	b := &Booking{
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Start:    *req.Start,
		End:      *req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Reload to pick up the joined item and booker names.
	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != actorID {
		return nil, ErrNotItemOwner
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	// The conditional update is the real gate: if a concurrent call decided
	// the booking between our read and this write, the update matches no row
	// and the loser gets the same error as a sequential double call.
	if err := s.repo.UpdateStatusIfWaiting(ctx, bookingID, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

func (s *service) GetByID(ctx context.Context, userID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if userID != b.BookerID && userID != b.ItemOwnerID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID int64, state string) ([]*Booking, error) {
	filter, err := s.listFilter(ctx, bookerID, state)
	if err != nil {
		return nil, err
	}

	filter.BookerID = bookerID
	return s.repo.List(ctx, filter)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, state string) ([]*Booking, error) {
	filter, err := s.listFilter(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}

	filter.ItemOwnerID = ownerID
	return s.repo.List(ctx, filter)
}

// listFilter checks the requesting user exists and resolves the state
// keyword against a single now snapshot.
func (s *service) listFilter(ctx context.Context, userID int64, state string) (Filter, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Filter{}, ErrUserNotFound
		}
		return Filter{}, err
	}

	st, err := ParseState(state)
	if err != nil {
		return Filter{}, err
	}

	return st.Filter(s.clk.Now()), nil
}
