package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

// Bot is the part of the Telegram client the handler uses.
type Bot interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, firstName string) error
}

type GameService interface {
	List() []*entities.Game
	Get(id string) (*entities.Game, error)
}

type QuizService interface {
	Start(ctx context.Context, userID, chatID int64, gameID string) (*storage.ActiveQuiz, error)
	Answer(ctx context.Context, chatID int64, questionIndex int, optionID string) (entities.Choice, error)
	Retry(ctx context.Context, chatID int64) error
	Proceed(ctx context.Context, chatID int64) error
	Active(chatID int64) (*storage.ActiveQuiz, bool)
}

type RewardService interface {
	Wallet(ctx context.Context, userID int64) (*entities.Wallet, error)
	RecentResults(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error)
}
