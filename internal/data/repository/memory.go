package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seat-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memoryStore is the process-wide key/value store. Aggregates are
// held as live objects; callers serialize mutation per aggregate, so
// the store itself only guards the maps.
type memoryStore struct {
	mu        sync.RWMutex
	showtimes map[string]*entity.Showtime
	bookings  map[string]*entity.Booking
	users     map[string]*entity.User
	log       *zap.Logger
}

func newMemoryStore(log *zap.Logger) *memoryStore {
	store := &memoryStore{
		showtimes: make(map[string]*entity.Showtime),
		bookings:  make(map[string]*entity.Booking),
		users:     make(map[string]*entity.User),
		log:       log.With(zap.String("repository", "memory")),
	}
	store.seed()
	return store
}

// seed loads the sample catalog: one showtime on screen SCR1 with a
// single row of ten seats, plus demo accounts for trying the API.
func (m *memoryStore) seed() {
	slot := entity.NewTimeSlot("2025-11-15", "19:00", "21:30")
	showtime := entity.NewShowtime(
		"ST20251115190001",
		"MOV_ZOOTOPIA2",
		"SCR1",
		slot,
		decimal.RequireFromString("50000.00"),
	)

	for col := 1; col <= 10; col++ {
		number, err := entity.NewSeatNumber("A", col)
		if err != nil {
			m.log.Error("Failed to seed seat", zap.Error(err), zap.Int("column", col))
			continue
		}
		seatID := fmt.Sprintf("SEAT_SCR1_A%d", col)
		showtime.AddSeat(entity.NewSeat(seatID, number, "SCR1"))
	}
	m.showtimes[showtime.ID()] = showtime

	demoUsers := []struct {
		username string
		fullName string
		password string
	}{
		{"user1", "Demo User One", "password123"},
		{"user2", "Demo User Two", "password456"},
		{"testuser", "Test User", "test123"},
	}
	for _, du := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			m.log.Error("Failed to seed user", zap.Error(err), zap.String("username", du.username))
			continue
		}
		user := &entity.User{
			UserID:       uuid.New().String(),
			Username:     du.username,
			FullName:     du.fullName,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}
		m.users[user.UserID] = user
	}

	m.log.Info("Memory store seeded",
		zap.Int("showtimes", len(m.showtimes)),
		zap.Int("users", len(m.users)),
	)
}

// ==================== Showtime ====================

type memoryShowtimeRepository struct {
	store *memoryStore
}

func (r *memoryShowtimeRepository) FindByID(ctx context.Context, id string) (*entity.Showtime, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	showtime, ok := r.store.showtimes[id]
	if !ok {
		return nil, fmt.Errorf("showtime %s: %w", id, ErrNotFound)
	}
	return showtime, nil
}

func (r *memoryShowtimeRepository) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entity.Showtime, 0, len(r.store.showtimes))
	for _, st := range r.store.showtimes {
		out = append(out, st)
	}
	return out, nil
}

func (r *memoryShowtimeRepository) Save(ctx context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.showtimes[showtime.ID()] = showtime
	return nil
}

// ==================== Booking ====================

type memoryBookingRepository struct {
	store *memoryStore
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return booking, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*entity.Booking, 0, len(r.store.bookings))
	for _, b := range r.store.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *memoryBookingRepository) Save(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.bookings[booking.ID()] = booking
	return nil
}

// ==================== User ====================

type memoryUserRepository struct {
	store *memoryStore
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

func (r *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
}

func (r *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return fmt.Errorf("username %s is already taken", user.Username)
		}
	}
	r.store.users[user.UserID] = user
	return nil
}
