package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"seat-reservation/internal/data/entity"
	"seat-reservation/internal/data/repository"
	"seat-reservation/internal/dto/request"
	"seat-reservation/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const testShowtimeID = "ST20251115190001"

func newTestService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()
	repos := repository.NewMemoryRepository(zap.NewNop())
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	return NewService(repos, config, zap.NewNop()), repos
}

func seatStatus(t *testing.T, repos *repository.Repository, seatID string) entity.SeatStatus {
	t.Helper()
	showtime, err := repos.Showtime.FindByID(context.Background(), testShowtimeID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	for _, s := range showtime.Seats() {
		if s.ID() == seatID {
			return s.Status()
		}
	}
	t.Fatalf("seat %s not found", seatID)
	return ""
}

func TestCreateBooking(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A2"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Status != "RESERVED" {
		t.Fatalf("status = %s, want RESERVED", resp.Status)
	}
	if !strings.HasPrefix(resp.BookingID, "BK-") {
		t.Fatalf("booking id = %s, want BK- prefix", resp.BookingID)
	}
	if want := decimal.RequireFromString("100000.00"); !decimal.RequireFromString(resp.TotalPrice).Equal(want) {
		t.Fatalf("total price = %s, want %s", resp.TotalPrice, want)
	}

	if got := seatStatus(t, repos, "SEAT_SCR1_A1"); got != entity.SeatReserved {
		t.Fatalf("seat A1 status = %s, want RESERVED", got)
	}
	showtime, _ := repos.Showtime.FindByID(ctx, testShowtimeID)
	if showtime.AvailableSeats() != 8 {
		t.Fatalf("available seats = %d, want 8", showtime.AvailableSeats())
	}
}

func TestCreateBookingRejectsTakenSeats(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, err := svc.Booking.CreateBooking(ctx, "user-2", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A2"},
	})
	if !errors.Is(err, entity.ErrSeatUnavailable) {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}
	// The second request must not have touched A2.
	if got := seatStatus(t, repos, "SEAT_SCR1_A2"); got != entity.SeatAvailable {
		t.Fatalf("seat A2 status = %s, want AVAILABLE", got)
	}
}

func TestCreateBookingRejectsSingleSeatGap(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Booking.CreateBooking(context.Background(), "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A3"},
	})
	if !errors.Is(err, entity.ErrSingleSeatGap) {
		t.Fatalf("expected ErrSingleSeatGap, got %v", err)
	}
}

func TestCreateBookingUnknownShowtime(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Booking.CreateBooking(context.Background(), "user-1", &request.CreateBookingRequest{
		ShowtimeID: "ST-missing",
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingRejectsDuplicateSeatIDs(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	_, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A1"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate seat ids")
	}

	// Nothing may have been reserved or counted.
	if got := seatStatus(t, repos, "SEAT_SCR1_A1"); got != entity.SeatAvailable {
		t.Fatalf("seat A1 status = %s, want AVAILABLE", got)
	}
	showtime, _ := repos.Showtime.FindByID(ctx, testShowtimeID)
	if showtime.AvailableSeats() != 10 {
		t.Fatalf("available seats = %d, want 10", showtime.AvailableSeats())
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Booking.CreateBooking(context.Background(), "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    nil,
	})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConcurrentCreateBookingOnSameSeats(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
				ShowtimeID: testShowtimeID,
				SeatIDs:    []string{"SEAT_SCR1_A3", "SEAT_SCR1_A4"},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, entity.ErrSeatUnavailable) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d concurrent reservations succeeded, want exactly 1", succeeded)
	}

	showtime, _ := repos.Showtime.FindByID(ctx, testShowtimeID)
	if showtime.AvailableSeats() != 8 {
		t.Fatalf("available seats = %d, want 8", showtime.AvailableSeats())
	}
}

func TestConfirmPaymentIssuesTicket(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	created, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A2"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	ticket, err := svc.Booking.ConfirmPayment(ctx, "user-1", &request.ConfirmPaymentRequest{
		BookingID: created.BookingID,
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if want := "TKT_" + created.BookingID; ticket.TicketID != want {
		t.Fatalf("ticket id = %s, want %s", ticket.TicketID, want)
	}
	if !ticket.IsValid {
		t.Fatal("issued ticket should be valid")
	}
	if !strings.HasPrefix(ticket.QRImage, "data:image/png;base64,") {
		t.Fatalf("qr image %q is not a png data url", ticket.QRImage[:min(len(ticket.QRImage), 40)])
	}

	if got := seatStatus(t, repos, "SEAT_SCR1_A1"); got != entity.SeatBooked {
		t.Fatalf("seat A1 status = %s, want BOOKED", got)
	}

	fetched, err := svc.Booking.GetBooking(ctx, "user-1", created.BookingID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fetched.Status != "CONFIRMED" {
		t.Fatalf("status = %s, want CONFIRMED", fetched.Status)
	}
}

func TestConfirmPaymentOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, err = svc.Booking.ConfirmPayment(ctx, "user-2", &request.ConfirmPaymentRequest{
		BookingID: created.BookingID,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestConfirmPaymentOnExpiredHoldReleasesSeats(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	// Plant a stale booking directly: seats reserved, hold window
	// already over.
	showtime, err := repos.Showtime.FindByID(ctx, testShowtimeID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	seatIDs := []string{"SEAT_SCR1_A9", "SEAT_SCR1_A10"}
	if err := showtime.ReserveSeats(seatIDs); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := repos.Showtime.Save(ctx, showtime); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	price := decimal.RequireFromString("50000.00")
	stale := entity.NewBooking("BK-20251114-180000-0001", "user-1", testShowtimeID,
		time.Now().Add(-11*time.Minute), price.Mul(decimal.NewFromInt(2)))
	for _, seatID := range seatIDs {
		stale.AddItem(entity.NewBookingItem(stale.ID()+"_"+seatID, stale.ID(), seatID, price))
	}
	if err := repos.Booking.Save(ctx, stale); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, err = svc.Booking.ConfirmPayment(ctx, "user-1", &request.ConfirmPaymentRequest{
		BookingID: stale.ID(),
	})
	if !errors.Is(err, entity.ErrHoldExpired) {
		t.Fatalf("expected ErrHoldExpired, got %v", err)
	}

	// The lazy expiry must have handed the seats back.
	for _, seatID := range seatIDs {
		if got := seatStatus(t, repos, seatID); got != entity.SeatAvailable {
			t.Fatalf("seat %s status = %s, want AVAILABLE", seatID, got)
		}
	}

	fetched, err := svc.Booking.GetBooking(ctx, "user-1", stale.ID())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fetched.Status != "EXPIRED" {
		t.Fatalf("status = %s, want EXPIRED", fetched.Status)
	}
}

func TestCancelBookingReleasesSeatsAndRefunds(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	created, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1", "SEAT_SCR1_A2"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := svc.Booking.ConfirmPayment(ctx, "user-1", &request.ConfirmPaymentRequest{
		BookingID: created.BookingID,
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cancelled, err := svc.Booking.CancelBooking(ctx, "user-1", created.BookingID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cancelled.BookingID != created.BookingID {
		t.Fatalf("booking id = %s", cancelled.BookingID)
	}

	// Refund follows the policy for the seeded show date.
	showtime, _ := repos.Showtime.FindByID(ctx, testShowtimeID)
	showtimeAt, err := showtime.TimeSlot().ShowDateTime()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	total := decimal.RequireFromString(created.TotalPrice)
	wantRefund := total.Mul(entity.RefundPercent(time.Until(showtimeAt)))
	if got := decimal.RequireFromString(cancelled.RefundAmount); !got.Equal(wantRefund) {
		t.Fatalf("refund = %s, want %s", got, wantRefund)
	}

	for _, seatID := range []string{"SEAT_SCR1_A1", "SEAT_SCR1_A2"} {
		if got := seatStatus(t, repos, seatID); got != entity.SeatAvailable {
			t.Fatalf("seat %s status = %s, want AVAILABLE", seatID, got)
		}
	}
	if showtime.AvailableSeats() != 10 {
		t.Fatalf("available seats = %d, want 10", showtime.AvailableSeats())
	}

	fetched, err := svc.Booking.GetBooking(ctx, "user-1", created.BookingID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fetched.Status != "CANCELLED" {
		t.Fatalf("status = %s, want CANCELLED", fetched.Status)
	}
}

func TestCancelBookingRequiresConfirmed(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, err = svc.Booking.CancelBooking(ctx, "user-1", created.BookingID)
	if !errors.Is(err, entity.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := svc.Booking.GetBooking(ctx, "user-2", created.BookingID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Booking.GetBooking(ctx, "user-1", "BK-missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserBookingsFiltersByOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Booking.CreateBooking(ctx, "user-1", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A1"},
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := svc.Booking.CreateBooking(ctx, "user-2", &request.CreateBookingRequest{
		ShowtimeID: testShowtimeID,
		SeatIDs:    []string{"SEAT_SCR1_A5"},
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	mine, err := svc.Booking.GetUserBookings(ctx, "user-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("got %d bookings, want 1", len(mine))
	}
	if mine[0].UserID != "user-1" {
		t.Fatalf("user id = %s, want user-1", mine[0].UserID)
	}

	none, err := svc.Booking.GetUserBookings(ctx, "user-3")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("got %d bookings, want 0", len(none))
	}
}

func TestGetUserBookingsNewestFirst(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	// Plant bookings with distinct creation times, oldest saved last
	// so map iteration order cannot accidentally match.
	price := decimal.RequireFromString("50000.00")
	ids := []string{
		"BK-20251114-190300-0003",
		"BK-20251114-190100-0001",
		"BK-20251114-190200-0002",
	}
	ages := []time.Duration{-1 * time.Minute, -3 * time.Minute, -2 * time.Minute}
	for i, id := range ids {
		b := entity.NewBooking(id, "user-1", testShowtimeID, time.Now().Add(ages[i]), price)
		if err := repos.Booking.Save(ctx, b); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	got, err := svc.Booking.GetUserBookings(ctx, "user-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d bookings, want 3", len(got))
	}
	want := []string{
		"BK-20251114-190300-0003",
		"BK-20251114-190200-0002",
		"BK-20251114-190100-0001",
	}
	for i, id := range want {
		if got[i].BookingID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].BookingID, id)
		}
	}
}
