// Package repository defines the storage boundary for the
// reservation core: point lookups and saves keyed by id. Two
// implementations exist, an in-memory store (default) and a
// Postgres-backed one; the orchestration layer is responsible for
// read-modify-write atomicity, the store only has to be safe for
// concurrent access.
package repository

import (
	"context"
	"errors"

	"seat-reservation/internal/data/entity"
	"seat-reservation/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a lookup misses. Handlers translate
// it into an HTTP 404.
var ErrNotFound = errors.New("not found")

type ShowtimeRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Showtime, error)
	FindAll(ctx context.Context) ([]*entity.Showtime, error)
	Save(ctx context.Context, showtime *entity.Showtime) error
}

type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	Save(ctx context.Context, booking *entity.Booking) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}

type Repository struct {
	Showtime ShowtimeRepository
	Booking  BookingRepository
	User     UserRepository
}

// NewMemoryRepository builds the mutex-guarded in-memory store,
// seeded with the sample catalog and demo users.
func NewMemoryRepository(log *zap.Logger) *Repository {
	store := newMemoryStore(log)
	return &Repository{
		Showtime: &memoryShowtimeRepository{store: store},
		Booking:  &memoryBookingRepository{store: store},
		User:     &memoryUserRepository{store: store},
	}
}

// NewPostgresRepository builds pgx-backed repositories on a shared
// connection pool.
func NewPostgresRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Showtime: NewShowtimePostgresRepository(db, log),
		Booking:  NewBookingPostgresRepository(db, log),
		User:     NewUserPostgresRepository(db, log),
	}
}
