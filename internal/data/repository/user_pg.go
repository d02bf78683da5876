package repository

import (
	"context"
	"errors"
	"fmt"

	"seat-reservation/internal/data/entity"
	"seat-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type userPostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserPostgresRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userPostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userPostgresRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, username, full_name, password_hash, created_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.UserID, &user.Username, &user.FullName, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find user by ID", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}

func (r *userPostgresRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, full_name, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.UserID, &user.Username, &user.FullName, &user.PasswordHash, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("find user %s: %w", username, err)
	}
	return &user, nil
}

func (r *userPostgresRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, full_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		user.UserID, user.Username, user.FullName, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create user", zap.Error(err), zap.String("username", user.Username))
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}
