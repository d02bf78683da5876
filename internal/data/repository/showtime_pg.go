package repository

import (
	"context"
	"errors"
	"fmt"

	"seat-reservation/internal/data/entity"
	"seat-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// showtimePostgresRepository persists showtimes as one header row
// plus one row per owned seat. Numeric columns travel as text so
// prices stay exact.
type showtimePostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimePostgresRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimePostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimePostgresRepository) FindByID(ctx context.Context, id string) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, screen_id, show_date, start_time, end_time, price_per_seat::text
		FROM showtimes
		WHERE id = $1
	`

	var (
		showtimeID, movieID, screenID string
		showDate, startTime, endTime  string
		price                         string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtimeID, &movieID, &screenID, &showDate, &startTime, &endTime, &price,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("showtime %s: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", id))
		return nil, fmt.Errorf("find showtime %s: %w", id, err)
	}

	pricePerSeat, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price for showtime %s: %w", id, err)
	}

	showtime := entity.NewShowtime(showtimeID, movieID, screenID,
		entity.NewTimeSlot(showDate, startTime, endTime), pricePerSeat)

	if err := r.loadSeats(ctx, showtime); err != nil {
		return nil, err
	}
	return showtime, nil
}

func (r *showtimePostgresRepository) loadSeats(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		SELECT id, seat_row, seat_column, screen_id, status
		FROM seats
		WHERE showtime_id = $1
		ORDER BY seat_row, seat_column
	`

	rows, err := r.db.Query(ctx, query, showtime.ID())
	if err != nil {
		r.log.Error("Failed to load seats", zap.Error(err), zap.String("showtime_id", showtime.ID()))
		return fmt.Errorf("load seats for showtime %s: %w", showtime.ID(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seatID, seatRow, screenID, status string
			seatColumn                        int
		)
		if err := rows.Scan(&seatID, &seatRow, &seatColumn, &screenID, &status); err != nil {
			return fmt.Errorf("scan seat row: %w", err)
		}
		number, err := entity.NewSeatNumber(seatRow, seatColumn)
		if err != nil {
			return fmt.Errorf("seat %s: %w", seatID, err)
		}
		showtime.AddSeat(entity.RehydrateSeat(seatID, number, screenID, entity.SeatStatus(status)))
	}
	return rows.Err()
}

func (r *showtimePostgresRepository) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	query := `SELECT id FROM showtimes ORDER BY show_date, start_time`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan showtime id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	showtimes := make([]*entity.Showtime, 0, len(ids))
	for _, id := range ids {
		showtime, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		showtimes = append(showtimes, showtime)
	}
	return showtimes, nil
}

// Save upserts the header row and writes back every seat status in
// one transaction.
func (r *showtimePostgresRepository) Save(ctx context.Context, showtime *entity.Showtime) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save showtime %s: %w", showtime.ID(), err)
	}
	defer tx.Rollback(ctx)

	slot := showtime.TimeSlot()
	_, err = tx.Exec(ctx, `
		INSERT INTO showtimes (id, movie_id, screen_id, show_date, start_time, end_time, price_per_seat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET movie_id = $2, screen_id = $3, show_date = $4, start_time = $5, end_time = $6, price_per_seat = $7
	`,
		showtime.ID(), showtime.MovieID(), showtime.ScreenID(),
		slot.Date(), slot.StartTime(), slot.EndTime(),
		showtime.PricePerSeat().String(),
	)
	if err != nil {
		r.log.Error("Failed to save showtime", zap.Error(err), zap.String("showtime_id", showtime.ID()))
		return fmt.Errorf("save showtime %s: %w", showtime.ID(), err)
	}

	for _, seat := range showtime.Seats() {
		_, err = tx.Exec(ctx, `
			INSERT INTO seats (id, showtime_id, seat_row, seat_column, screen_id, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET status = $6
		`,
			seat.ID(), showtime.ID(), seat.Number().Row(), seat.Number().Column(),
			seat.ScreenID(), string(seat.Status()),
		)
		if err != nil {
			r.log.Error("Failed to save seat", zap.Error(err), zap.String("seat_id", seat.ID()))
			return fmt.Errorf("save seat %s: %w", seat.ID(), err)
		}
	}

	return tx.Commit(ctx)
}
