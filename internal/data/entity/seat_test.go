package entity

import (
	"errors"
	"testing"
)

func newTestSeat(t *testing.T) *Seat {
	t.Helper()
	number, err := NewSeatNumber("A", 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return NewSeat("SEAT_SCR1_A1", number, "SCR1")
}

func TestSeatReserveConfirmRoundTrip(t *testing.T) {
	seat := newTestSeat(t)

	if seat.Status() != SeatAvailable {
		t.Fatalf("new seat status = %s, want AVAILABLE", seat.Status())
	}
	if err := seat.Reserve(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seat.Status() != SeatReserved {
		t.Fatalf("status after reserve = %s, want RESERVED", seat.Status())
	}
	if err := seat.Confirm(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if seat.Status() != SeatBooked {
		t.Fatalf("status after confirm = %s, want BOOKED", seat.Status())
	}
}

func TestSeatReserveReleaseRoundTrip(t *testing.T) {
	seat := newTestSeat(t)

	if err := seat.Reserve(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	seat.Release()
	if seat.Status() != SeatAvailable {
		t.Fatalf("status after release = %s, want AVAILABLE", seat.Status())
	}
}

func TestSeatInvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *Seat)
		op      func(s *Seat) error
	}{
		{
			name:    "reserve a reserved seat",
			prepare: func(s *Seat) { s.AdjustStatus(SeatReserved) },
			op:      func(s *Seat) error { return s.Reserve() },
		},
		{
			name:    "reserve a blocked seat",
			prepare: func(s *Seat) { s.AdjustStatus(SeatBlocked) },
			op:      func(s *Seat) error { return s.Reserve() },
		},
		{
			name:    "confirm an available seat",
			prepare: func(s *Seat) {},
			op:      func(s *Seat) error { return s.Confirm() },
		},
		{
			name:    "confirm a booked seat",
			prepare: func(s *Seat) { s.AdjustStatus(SeatBooked) },
			op:      func(s *Seat) error { return s.Confirm() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat := newTestSeat(t)
			tt.prepare(seat)
			before := seat.Status()
			err := tt.op(seat)
			if !errors.Is(err, ErrInvalidState) {
				t.Fatalf("expected ErrInvalidState, got %v", err)
			}
			if seat.Status() != before {
				t.Fatalf("status changed on failed transition: %s -> %s", before, seat.Status())
			}
		})
	}
}

func TestSeatReleaseIsNoOpOutsideHeldStates(t *testing.T) {
	seat := newTestSeat(t)
	seat.AdjustStatus(SeatBlocked)

	seat.Release()
	if seat.Status() != SeatBlocked {
		t.Fatalf("release changed BLOCKED seat to %s", seat.Status())
	}

	seat.AdjustStatus(SeatAvailable)
	seat.Release()
	if seat.Status() != SeatAvailable {
		t.Fatalf("release changed AVAILABLE seat to %s", seat.Status())
	}
}

func TestSeatNumber(t *testing.T) {
	number, err := NewSeatNumber("B", 12)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := number.String(); got != "B12" {
		t.Fatalf("String() = %q, want %q", got, "B12")
	}

	same, _ := NewSeatNumber("B", 12)
	other, _ := NewSeatNumber("B", 13)
	if !number.Equal(same) {
		t.Fatal("expected B12 == B12")
	}
	if number.Equal(other) {
		t.Fatal("expected B12 != B13")
	}

	if _, err := NewSeatNumber("", 1); err == nil {
		t.Fatal("expected error for empty row")
	}
	if _, err := NewSeatNumber("A", 0); err == nil {
		t.Fatal("expected error for column 0")
	}
}
