package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seat-reservation/internal/data/entity"
	"seat-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// bookingPostgresRepository persists bookings with their items. The
// hold expiry is not stored; it is re-derived from created_at on
// rehydration.
type bookingPostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingPostgresRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingPostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingPostgresRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, showtime_id, created_at, total_price::text, status
		FROM bookings
		WHERE id = $1
	`

	booking, err := r.scanBooking(ctx, r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", id))
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	return booking, nil
}

func (r *bookingPostgresRepository) scanBooking(ctx context.Context, row pgx.Row) (*entity.Booking, error) {
	var (
		bookingID, userID, showtimeID string
		createdAt                     time.Time
		totalPrice, status            string
	)
	if err := row.Scan(&bookingID, &userID, &showtimeID, &createdAt, &totalPrice, &status); err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(totalPrice)
	if err != nil {
		return nil, fmt.Errorf("parse total price for booking %s: %w", bookingID, err)
	}

	items, err := r.loadItems(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return entity.RehydrateBooking(bookingID, userID, showtimeID, createdAt,
		total, entity.BookingStatus(status), items), nil
}

func (r *bookingPostgresRepository) loadItems(ctx context.Context, bookingID string) ([]*entity.BookingItem, error) {
	query := `
		SELECT id, seat_id, price::text
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load items for booking %s: %w", bookingID, err)
	}
	defer rows.Close()

	var items []*entity.BookingItem
	for rows.Next() {
		var itemID, seatID, price string
		if err := rows.Scan(&itemID, &seatID, &price); err != nil {
			return nil, fmt.Errorf("scan booking item: %w", err)
		}
		itemPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price for item %s: %w", itemID, err)
		}
		items = append(items, entity.NewBookingItem(itemID, bookingID, seatID, itemPrice))
	}
	return items, rows.Err()
}

func (r *bookingPostgresRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT id FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bookings := make([]*entity.Booking, 0, len(ids))
	for _, id := range ids {
		booking, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (r *bookingPostgresRepository) Save(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save booking %s: %w", booking.ID(), err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, showtime_id, created_at, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET status = $6
	`,
		booking.ID(), booking.UserID(), booking.ShowtimeID(),
		booking.CreatedAt(), booking.TotalPrice().String(), string(booking.Status()),
	)
	if err != nil {
		r.log.Error("Failed to save booking", zap.Error(err), zap.String("booking_id", booking.ID()))
		return fmt.Errorf("save booking %s: %w", booking.ID(), err)
	}

	for _, item := range booking.Items() {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_items (id, booking_id, seat_id, price)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`,
			item.ID(), item.BookingID(), item.SeatID(), item.Price().String(),
		)
		if err != nil {
			r.log.Error("Failed to save booking item", zap.Error(err), zap.String("item_id", item.ID()))
			return fmt.Errorf("save booking item %s: %w", item.ID(), err)
		}
	}

	return tx.Commit(ctx)
}
