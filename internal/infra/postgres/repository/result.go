package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/infra/postgres"
)

// ResultRepository stores completed quiz runs and their choices.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveWithTx stores a result and its choices within a transaction.
func (r *ResultRepository) SaveWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (
			id, user_id, game_id, attempt, score,
			max_score, coins, celebrated, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(
		ctx,
		query,
		result.ID,
		result.UserID,
		result.GameID,
		result.Attempt,
		result.Score,
		result.MaxScore,
		result.Coins,
		result.Celebrated,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(result.Choices))
	for _, c := range result.Choices {
		rows = append(rows, []any{result.ID, c.QuestionIndex, c.OptionID, c.IsCorrect, c.AnsweredAt})
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"quiz_choices"},
		[]string{"result_id", "question_index", "option_id", "is_correct", "answered_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("save quiz choices: %w", err)
	}

	return nil
}

// ListRecentByUserID returns the latest results of a user, newest first.
// Choices are not loaded.
func (r *ResultRepository) ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, user_id, game_id, attempt, score, max_score, coins, celebrated, completed_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	var results []*entities.QuizResult
	for rows.Next() {
		var res entities.QuizResult
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.GameID,
			&res.Attempt,
			&res.Score,
			&res.MaxScore,
			&res.Coins,
			&res.Celebrated,
			&res.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}

	return results, nil
}
