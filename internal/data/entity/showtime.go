package entity

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Showtime is the seat-inventory aggregate for one scheduled
// showing. It owns its seats; all multi-seat operations go through
// it so the availability counter and seat statuses move together.
//
// Invariant: availableSeats always equals the number of owned seats
// whose status is AVAILABLE.
type Showtime struct {
	showtimeID     string
	movieID        string
	screenID       string
	timeSlot       TimeSlot
	pricePerSeat   decimal.Decimal
	availableSeats int
	seats          []*Seat
}

func NewShowtime(showtimeID, movieID, screenID string, timeSlot TimeSlot, pricePerSeat decimal.Decimal) *Showtime {
	return &Showtime{
		showtimeID:   showtimeID,
		movieID:      movieID,
		screenID:     screenID,
		timeSlot:     timeSlot,
		pricePerSeat: pricePerSeat,
	}
}

func (st *Showtime) ID() string { return st.showtimeID }

func (st *Showtime) MovieID() string { return st.movieID }

func (st *Showtime) ScreenID() string { return st.screenID }

func (st *Showtime) TimeSlot() TimeSlot { return st.timeSlot }

func (st *Showtime) PricePerSeat() decimal.Decimal { return st.pricePerSeat }

func (st *Showtime) AvailableSeats() int { return st.availableSeats }

// AddSeat attaches a seat to the inventory. Seats are added once at
// catalog setup (or rehydration) and never removed.
func (st *Showtime) AddSeat(seat *Seat) {
	st.seats = append(st.seats, seat)
	if seat.Status() == SeatAvailable {
		st.availableSeats++
	}
}

// Seats returns a copy of the owned seat list in insertion order.
func (st *Showtime) Seats() []*Seat {
	out := make([]*Seat, len(st.seats))
	copy(out, st.seats)
	return out
}

func (st *Showtime) seat(seatID string) *Seat {
	for _, s := range st.seats {
		if s.ID() == seatID {
			return s
		}
	}
	return nil
}

// CheckSeatAvailability reports whether every requested seat exists
// and is AVAILABLE. An unknown id counts as unavailable, not as an
// error.
func (st *Showtime) CheckSeatAvailability(seatIDs []string) bool {
	for _, id := range seatIDs {
		s := st.seat(id)
		if s == nil || s.Status() != SeatAvailable {
			return false
		}
	}
	return true
}

// ValidateNoSingleSeatGap rejects selections that would strand
// exactly one seat between two selected seats in the same row
// (e.g. picking A1 and A3 leaves A2 boxed in). Gaps of two or more
// seats are fine.
//
// Known policy limit: only seats in this request are considered, so
// two separate bookings can still strand a seat between them.
func (st *Showtime) ValidateNoSingleSeatGap(seatIDs []string) bool {
	selected := make([]SeatNumber, 0, len(seatIDs))
	for _, id := range seatIDs {
		if s := st.seat(id); s != nil {
			selected = append(selected, s.Number())
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		if selected[i].Row() != selected[j].Row() {
			return selected[i].Row() < selected[j].Row()
		}
		return selected[i].Column() < selected[j].Column()
	})

	for i := 0; i+1 < len(selected); i++ {
		cur, next := selected[i], selected[i+1]
		if cur.Row() == next.Row() && next.Column()-cur.Column() == 2 {
			return false
		}
	}
	return true
}

// ReserveSeats atomically reserves the requested seats. On any
// failure no seat is touched. A seat id appearing more than once is
// rejected up front; letting it through would reserve the seat on the
// first pass and fail on the second, after mutation has started.
func (st *Showtime) ReserveSeats(seatIDs []string) error {
	seen := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("seat %s requested more than once: %w", id, ErrSeatUnavailable)
		}
		seen[id] = struct{}{}
	}

	if !st.CheckSeatAvailability(seatIDs) {
		return ErrSeatUnavailable
	}
	if !st.ValidateNoSingleSeatGap(seatIDs) {
		return ErrSingleSeatGap
	}

	for _, id := range seatIDs {
		if s := st.seat(id); s != nil {
			if err := s.Reserve(); err != nil {
				return err
			}
		}
	}
	st.availableSeats -= len(seatIDs)
	return nil
}

// ConfirmSeats transitions the named seats RESERVED -> BOOKED.
// Unknown ids are silently skipped.
func (st *Showtime) ConfirmSeats(seatIDs []string) error {
	for _, id := range seatIDs {
		s := st.seat(id)
		if s == nil {
			continue
		}
		if err := s.Confirm(); err != nil {
			return fmt.Errorf("confirm seats: %w", err)
		}
	}
	return nil
}

// ReleaseSeats returns the named seats to AVAILABLE. Unknown ids and
// seats that are already available are silently skipped; the counter
// only moves for seats that actually transitioned.
func (st *Showtime) ReleaseSeats(seatIDs []string) {
	for _, id := range seatIDs {
		s := st.seat(id)
		if s == nil {
			continue
		}
		was := s.Status()
		s.Release()
		if was != s.Status() {
			st.availableSeats++
		}
	}
}
