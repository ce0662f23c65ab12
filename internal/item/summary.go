package item

import "time"

// Summarize computes the last and next booking references for one item from
// its approved bookings, which must already be sorted ascending by start.
//
// The last booking is the one with the greatest start not after now (a
// booking in progress counts); the next booking is the first one starting
// strictly after now. A single booking straddling now is the last booking
// only. The result is derived on demand and never stored.
func Summarize(bookings []ApprovedBooking, now time.Time) (last, next *BookingRef) {
	for i := range bookings {
		b := bookings[i]
		if b.Start.After(now) {
			if next == nil {
				next = &BookingRef{ID: b.ID, BookerID: b.BookerID}
			}
			continue
		}
		last = &BookingRef{ID: b.ID, BookerID: b.BookerID}
	}
	return last, next
}
