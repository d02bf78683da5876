package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"seat-reservation/internal/data/entity"
	"seat-reservation/internal/data/repository"
	"seat-reservation/internal/dto/request"
	"seat-reservation/internal/dto/response"
	"seat-reservation/internal/qr"
	"seat-reservation/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const qrImageSize = 256

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.TicketResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*response.CancelResponse, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	locks *aggregateLocks
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, locks *aggregateLocks, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		locks: locks,
		log:   log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the requested seats and persists a new
// RESERVED booking. The availability check and the reservation run
// under the showtime lock as one atomic unit, and the mutated
// inventory is saved before the booking so a booking never refers to
// seats that failed to reserve.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	unlock := s.locks.lock(showtimeKey(req.ShowtimeID))
	defer unlock()

	showtime, err := s.repo.Showtime.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	if err := showtime.ReserveSeats(req.SeatIDs); err != nil {
		s.log.Warn("Seat reservation rejected",
			zap.Error(err),
			zap.String("showtime_id", req.ShowtimeID),
			zap.Strings("seat_ids", req.SeatIDs),
		)
		return nil, err
	}

	bookingID := utils.GenerateBookingID()
	now := time.Now()
	totalPrice := showtime.PricePerSeat().Mul(decimal.NewFromInt(int64(len(req.SeatIDs))))

	booking := entity.NewBooking(bookingID, userID, req.ShowtimeID, now, totalPrice)
	for _, seatID := range req.SeatIDs {
		itemID := bookingID + "_" + seatID
		booking.AddItem(entity.NewBookingItem(itemID, bookingID, seatID, showtime.PricePerSeat()))
	}

	if err := s.repo.Showtime.Save(ctx, showtime); err != nil {
		showtime.ReleaseSeats(req.SeatIDs)
		s.log.Error("Failed to save inventory", zap.Error(err), zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("save showtime %s: %w", req.ShowtimeID, err)
	}

	if err := s.repo.Booking.Save(ctx, booking); err != nil {
		// Compensate: hand the seats back so the inventory does not
		// leak a reservation without a booking.
		showtime.ReleaseSeats(req.SeatIDs)
		if saveErr := s.repo.Showtime.Save(ctx, showtime); saveErr != nil {
			s.log.Error("Failed to roll back reservation", zap.Error(saveErr), zap.String("showtime_id", req.ShowtimeID))
		}
		s.log.Error("Failed to save booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("save booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.String("showtime_id", req.ShowtimeID),
		zap.Int("seat_count", len(req.SeatIDs)),
		zap.String("total_price", totalPrice.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// ConfirmPayment confirms a held booking, books its seats and issues
// the ticket.
func (s *bookingService) ConfirmPayment(ctx context.Context, userID string, req *request.ConfirmPaymentRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	unlock := s.locks.lock(bookingKey(req.BookingID))
	defer unlock()

	booking, err := s.repo.Booking.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID() != userID {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", req.BookingID, ErrForbidden)
	}

	expired, err := s.expireIfNeeded(ctx, booking)
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, fmt.Errorf("booking %s has expired, please create a new booking: %w", req.BookingID, entity.ErrHoldExpired)
	}

	if err := booking.ConfirmPayment(); err != nil {
		s.log.Warn("Payment confirmation rejected", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, err
	}

	unlockShowtime := s.locks.lock(showtimeKey(booking.ShowtimeID()))
	defer unlockShowtime()

	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID())
	if err != nil {
		return nil, err
	}
	if err := showtime.ConfirmSeats(booking.SeatIDs()); err != nil {
		return nil, err
	}
	if err := s.repo.Showtime.Save(ctx, showtime); err != nil {
		return nil, fmt.Errorf("save showtime %s: %w", booking.ShowtimeID(), err)
	}

	ticket, err := booking.IssueTicket()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking %s: %w", booking.ID(), err)
	}

	qrImage, err := qr.DataURL(ticket.QRCode(), qrImageSize)
	if err != nil {
		// The opaque code is still usable without the rendered image.
		s.log.Warn("Failed to render ticket QR", zap.Error(err), zap.String("ticket_id", ticket.ID()))
	}

	s.log.Info("Payment confirmed",
		zap.String("booking_id", booking.ID()),
		zap.String("ticket_id", ticket.ID()),
		zap.String("user_id", userID),
	)

	return &response.TicketResponse{
		TicketID:  ticket.ID(),
		BookingID: ticket.BookingID(),
		QRCode:    ticket.QRCode(),
		QRImage:   qrImage,
		IssuedAt:  ticket.IssuedAt(),
		IsValid:   ticket.IsValid(),
		Message:   "Payment confirmed successfully! Your ticket has been issued. Please save your QR code for check-in.",
	}, nil
}

// CancelBooking cancels a confirmed booking, releases its seats and
// returns the refund due under the cancellation policy.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*response.CancelResponse, error) {
	unlock := s.locks.lock(bookingKey(bookingID))
	defer unlock()

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID() != userID {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", bookingID, ErrForbidden)
	}

	unlockShowtime := s.locks.lock(showtimeKey(booking.ShowtimeID()))
	defer unlockShowtime()

	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID())
	if err != nil {
		return nil, err
	}
	showtimeAt, err := showtime.TimeSlot().ShowDateTime()
	if err != nil {
		return nil, err
	}

	refund, err := booking.Cancel(showtimeAt)
	if err != nil {
		s.log.Warn("Cancellation rejected", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, err
	}

	showtime.ReleaseSeats(booking.SeatIDs())
	if err := s.repo.Showtime.Save(ctx, showtime); err != nil {
		return nil, fmt.Errorf("save showtime %s: %w", booking.ShowtimeID(), err)
	}
	if err := s.repo.Booking.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.String("refund_amount", refund.String()),
	)

	return &response.CancelResponse{
		Message:      "Booking cancelled successfully. Refund will be processed according to cancellation policy.",
		RefundAmount: refund.String(),
		BookingID:    bookingID,
	}, nil
}

// GetBooking is the ownership-checked read; it runs the lazy expiry
// check so stale holds surface as EXPIRED.
func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	unlock := s.locks.lock(bookingKey(bookingID))
	defer unlock()

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID() != userID {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", bookingID, ErrForbidden)
	}

	if _, err := s.expireIfNeeded(ctx, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// GetUserBookings lists the caller's bookings, newest first by
// creation time.
func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	all, err := s.repo.Booking.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]response.BookingResponse, 0)
	for _, booking := range all {
		if booking.UserID() != userID {
			continue
		}
		unlock := s.locks.lock(bookingKey(booking.ID()))
		if _, err := s.expireIfNeeded(ctx, booking); err != nil {
			unlock()
			return nil, err
		}
		unlock()
		out = append(out, response.BookingToResponse(booking))
	}

	// The memory store iterates a map, so impose the order here.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// expireIfNeeded runs the pull-based hold check. On the RESERVED ->
// EXPIRED transition it hands the booking's seats back to inventory
// and persists both aggregates. The caller must hold the booking
// lock; the showtime lock is taken here. There is no background
// sweeper, so this is the only place stale holds get cleaned up.
func (s *bookingService) expireIfNeeded(ctx context.Context, booking *entity.Booking) (bool, error) {
	if !booking.CheckHoldExpiry() {
		return false, nil
	}

	unlock := s.locks.lock(showtimeKey(booking.ShowtimeID()))
	defer unlock()

	showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Expired booking references unknown showtime",
				zap.String("booking_id", booking.ID()),
				zap.String("showtime_id", booking.ShowtimeID()),
			)
		} else {
			return true, err
		}
	} else {
		showtime.ReleaseSeats(booking.SeatIDs())
		if err := s.repo.Showtime.Save(ctx, showtime); err != nil {
			return true, fmt.Errorf("save showtime %s: %w", booking.ShowtimeID(), err)
		}
	}

	if err := s.repo.Booking.Save(ctx, booking); err != nil {
		return true, fmt.Errorf("save booking %s: %w", booking.ID(), err)
	}

	s.log.Info("Booking hold expired",
		zap.String("booking_id", booking.ID()),
		zap.String("showtime_id", booking.ShowtimeID()),
	)
	return true, nil
}
