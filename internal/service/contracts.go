package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type GameRepository interface {
	GetByID(id string) (*entities.Game, error)
	GetAll() []*entities.Game
}

type ResultRepository interface {
	SaveWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error
	ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error)
}

type WalletRepository interface {
	ApplyResultWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error
	GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// SessionStore keeps the active quiz of every chat.
type SessionStore interface {
	Store(chatID int64, q *storage.ActiveQuiz)
	Get(chatID int64) (*storage.ActiveQuiz, bool)
	Delete(chatID int64)
	DisposeIdle(ttl time.Duration) []int64
	Len() int
}

// Metrics records quiz activity.
type Metrics interface {
	SessionStarted(gameID string)
	AnswerRecorded(gameID string, correct bool)
	CoinsAwarded(coins int)
	SessionCompleted(gameID string, celebrated bool)
	SessionsDisposed(n int)
	SetActiveSessions(n int)
}

// Presenter renders quizzes for the player.
type Presenter interface {
	ShowQuiz(q *storage.ActiveQuiz, v quiz.View)
	ShowGameIntro(ctx context.Context, chatID int64, game *entities.Game) error
}
