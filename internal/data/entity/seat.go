package entity

import "fmt"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatReserved  SeatStatus = "RESERVED"
	SeatBooked    SeatStatus = "BOOKED"
	SeatBlocked   SeatStatus = "BLOCKED"
)

// Seat is a single physical seat owned by exactly one Showtime.
// Its status only changes through the transition methods below;
// AdjustStatus is the administrative escape hatch for seed and
// blocking data.
type Seat struct {
	seatID   string
	number   SeatNumber
	screenID string
	status   SeatStatus
}

func NewSeat(seatID string, number SeatNumber, screenID string) *Seat {
	return &Seat{
		seatID:   seatID,
		number:   number,
		screenID: screenID,
		status:   SeatAvailable,
	}
}

// RehydrateSeat rebuilds a seat from stored state.
func RehydrateSeat(seatID string, number SeatNumber, screenID string, status SeatStatus) *Seat {
	return &Seat{
		seatID:   seatID,
		number:   number,
		screenID: screenID,
		status:   status,
	}
}

func (s *Seat) ID() string { return s.seatID }

func (s *Seat) Number() SeatNumber { return s.number }

func (s *Seat) ScreenID() string { return s.screenID }

func (s *Seat) Status() SeatStatus { return s.status }

// Reserve transitions AVAILABLE -> RESERVED.
func (s *Seat) Reserve() error {
	if s.status != SeatAvailable {
		return fmt.Errorf("seat %s is not available: %w", s.number, ErrInvalidState)
	}
	s.status = SeatReserved
	return nil
}

// Confirm transitions RESERVED -> BOOKED.
func (s *Seat) Confirm() error {
	if s.status != SeatReserved {
		return fmt.Errorf("seat %s is not reserved: %w", s.number, ErrInvalidState)
	}
	s.status = SeatBooked
	return nil
}

// Release returns a RESERVED or BOOKED seat to AVAILABLE. Any other
// status is left unchanged; release never fails.
func (s *Seat) Release() {
	if s.status == SeatReserved || s.status == SeatBooked {
		s.status = SeatAvailable
	}
}

// AdjustStatus overrides the status unconditionally, bypassing the
// state machine.
func (s *Seat) AdjustStatus(status SeatStatus) {
	s.status = status
}
