package usecase

import (
	"errors"

	"seat-reservation/internal/data/repository"
	"seat-reservation/pkg/utils"

	"go.uber.org/zap"
)

// ErrForbidden is returned when a caller touches a booking they do
// not own.
var ErrForbidden = errors.New("forbidden")

type Service struct {
	Auth     AuthService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	locks := &aggregateLocks{}
	return &Service{
		Auth:     NewAuthService(repo.User, config, log),
		Showtime: NewShowtimeService(repo.Showtime, locks, log),
		Booking:  NewBookingService(repo, locks, log),
	}
}
