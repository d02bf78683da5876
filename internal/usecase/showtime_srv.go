package usecase

import (
	"context"
	"fmt"

	"seat-reservation/internal/data/repository"
	"seat-reservation/internal/dto/response"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	GetShowtimeDetail(ctx context.Context, showtimeID string) (*response.ShowtimeDetailResponse, error)
}

type showtimeService struct {
	showtimes repository.ShowtimeRepository
	locks     *aggregateLocks
	log       *zap.Logger
}

func NewShowtimeService(showtimes repository.ShowtimeRepository, locks *aggregateLocks, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		showtimes: showtimes,
		locks:     locks,
		log:       log.With(zap.String("service", "showtime")),
	}
}

// GetShowtimes lists the catalog. The store hands out live
// aggregates, so each projection runs under that showtime's lock to
// stay consistent with in-flight bookings.
func (s *showtimeService) GetShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.showtimes.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	out := make([]response.ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		unlock := s.locks.lock(showtimeKey(st.ID()))
		out[i] = response.ShowtimeToResponse(st)
		unlock()
	}
	return out, nil
}

func (s *showtimeService) GetShowtimeDetail(ctx context.Context, showtimeID string) (*response.ShowtimeDetailResponse, error) {
	unlock := s.locks.lock(showtimeKey(showtimeID))
	defer unlock()

	showtime, err := s.showtimes.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	detail := response.ShowtimeToDetailResponse(showtime)
	return &detail, nil
}
