package entity

import "time"

// BookingStatus is a closed enum compared by value.
type BookingStatus string

const (
	BookingReserved  BookingStatus = "RESERVED"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

func (s BookingStatus) IsReserved() bool { return s == BookingReserved }

func (s BookingStatus) IsConfirmed() bool { return s == BookingConfirmed }

// IsTerminal reports whether no transition leaves this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingExpired
}

func (s BookingStatus) String() string { return string(s) }

// HoldExpiry is the absolute end of a booking's payment window.
// Expiry is evaluated lazily against the wall clock at call time;
// nothing re-checks it in the background.
type HoldExpiry struct {
	expiryTime time.Time
}

func NewHoldExpiry(expiryTime time.Time) HoldExpiry {
	return HoldExpiry{expiryTime: expiryTime}
}

func (h HoldExpiry) ExpiryTime() time.Time { return h.expiryTime }

func (h HoldExpiry) IsExpired() bool {
	return time.Now().After(h.expiryTime)
}

// Remaining returns the time left in the hold window, floored at 0.
func (h HoldExpiry) Remaining() time.Duration {
	d := time.Until(h.expiryTime)
	if d < 0 {
		return 0
	}
	return d
}
