package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

// State is a listing filter keyword. It is a closed enumeration; anything
// outside it is rejected at parse time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState normalizes and validates a state keyword.
func ParseState(raw string) (State, error) {
	switch s := State(strings.ToUpper(raw)); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	default:
		return "", apperror.Newf(http.StatusBadRequest, "Unknown state: %s", raw)
	}
}

// Filter is the predicate a listing query applies to bookings. Time bounds
// are pointers so that an unset bound means "no constraint". A zero BookerID
// or ItemOwnerID likewise means "no constraint".
type Filter struct {
	BookerID        int64
	ItemOwnerID     int64
	Status          Status
	StartAtOrBefore *time.Time // start <= t
	StartAfter      *time.Time // start > t
	EndAfter        *time.Time // end > t
	EndBefore       *time.Time // end < t
}

// Filter maps the state keyword to its predicate against a fixed now
// snapshot. The snapshot is taken once per listing call so that one call's
// results are internally consistent.
func (s State) Filter(now time.Time) Filter {
	switch s {
	case StateCurrent:
		return Filter{StartAtOrBefore: &now, EndAfter: &now}
	case StatePast:
		return Filter{EndBefore: &now}
	case StateFuture:
		return Filter{StartAfter: &now}
	case StateWaiting:
		return Filter{Status: StatusWaiting}
	case StateRejected:
		return Filter{Status: StatusRejected}
	default: // StateAll
		return Filter{}
	}
}

// Matches evaluates the filter against a single booking in memory. The SQL
// repository applies the same predicate; this form is used by in-memory
// implementations.
func (f Filter) Matches(b *Booking) bool {
	if f.BookerID != 0 && b.BookerID != f.BookerID {
		return false
	}
	if f.ItemOwnerID != 0 && b.ItemOwnerID != f.ItemOwnerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.StartAtOrBefore != nil && b.Start.After(*f.StartAtOrBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	return true
}
