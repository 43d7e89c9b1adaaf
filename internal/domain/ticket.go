package domain

import "time"

// Ticket is the parking permit attached to a vehicle plate. A row is created
// on the plate's first purchase and never deleted afterwards; cancellation
// and transfer only zero its expiration.
type Ticket struct {
	Plate  string
	Zone   Zone
	Holder string
	// Start is the instant the paid window begins. Purchases default it to
	// the purchase time; a deferred purchase sets it in the future.
	Start time.Time
	// Expiration is the absolute instant the permit runs out. The zero
	// value marks an invalidated (cancelled or transferred-away) ticket.
	Expiration time.Time
}

// PaidFrom returns the instant unused paid time is measured from: the
// ticket's start when it has not been reached yet, otherwise now. This keeps
// the unelapsed deferral gap of a future-start ticket out of refunds.
func (t Ticket) PaidFrom(now time.Time) time.Time {
	if t.Start.After(now) {
		return t.Start
	}
	return now
}

// ActiveAt reports whether the ticket still has paid time left at now.
func (t Ticket) ActiveAt(now time.Time) bool {
	return t.Expiration.After(now)
}

// ValidFor reports whether the ticket covers parking in zone at now.
func (t Ticket) ValidFor(zone Zone, now time.Time) bool {
	return t.Zone == zone && t.ActiveAt(now)
}
