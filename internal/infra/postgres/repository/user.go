package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/infra/postgres"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository stores players.
type UserRepository struct {
	db postgres.DBTX
}

func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Save registers a player or refreshes an existing one and reports
// whether the row was created. created_at is never overwritten.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	query := `
		INSERT INTO users (id, chat_id, first_name, is_active, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			chat_id      = EXCLUDED.chat_id,
			first_name   = EXCLUDED.first_name,
			is_active    = TRUE,
			last_seen_at = EXCLUDED.last_seen_at
		RETURNING (xmax = 0) AS created
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		user.ID, user.ChatID, user.FirstName, user.IsActive, user.CreatedAt, user.LastSeenAt,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("save user %d: %w", user.ID, err)
	}

	return created, nil
}

// GetByID returns ErrUserNotFound for unknown players.
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*entities.User, error) {
	query := `
		SELECT id, chat_id, first_name, is_active, created_at, last_seen_at
		FROM users
		WHERE id = $1
	`

	var user entities.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.ChatID,
		&user.FirstName,
		&user.IsActive,
		&user.CreatedAt,
		&user.LastSeenAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}

	return &user, nil
}
