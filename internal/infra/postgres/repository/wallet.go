package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/infra/postgres"
)

// WalletRepository provides access to reward wallets.
type WalletRepository struct {
	db postgres.DBTX
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db postgres.DBTX) *WalletRepository {
	return &WalletRepository{db: db}
}

// ApplyResultWithTx adds a finished run to the user's wallet.
func (r *WalletRepository) ApplyResultWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error {
	query := `
		INSERT INTO wallets (
			user_id, coins, sessions_completed, celebrations,
			correct_answers, total_answers, updated_at
		) VALUES ($1, $2, 1, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			coins = wallets.coins + EXCLUDED.coins,
			sessions_completed = wallets.sessions_completed + 1,
			celebrations = wallets.celebrations + EXCLUDED.celebrations,
			correct_answers = wallets.correct_answers + EXCLUDED.correct_answers,
			total_answers = wallets.total_answers + EXCLUDED.total_answers,
			updated_at = EXCLUDED.updated_at
	`

	celebrations := 0
	if result.Celebrated {
		celebrations = 1
	}

	_, err := tx.Exec(
		ctx,
		query,
		result.UserID,
		result.Coins,
		celebrations,
		result.Score,
		result.MaxScore,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("apply result to wallet: %w", err)
	}

	return nil
}

// GetByUserID returns the wallet of a user. Users without results get an empty wallet.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error) {
	query := `
		SELECT user_id, coins, sessions_completed, celebrations,
		       correct_answers, total_answers, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var w entities.Wallet
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&w.UserID,
		&w.Coins,
		&w.SessionsCompleted,
		&w.Celebrations,
		&w.CorrectAnswers,
		&w.TotalAnswers,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.NewWallet(userID), nil
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &w, nil
}
