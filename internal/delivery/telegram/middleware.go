package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/repository"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling replies to the chat when fn fails. Errors the player
// can fix get a hint, the rest a generic message.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if hint, ok := playerHint(err); ok {
			h.logger.Warn("request rejected",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			_ = h.send(newPlainMessage(chatID, hint))
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		_ = h.send(newPlainMessage(chatID, msgInternalError))
		return nil
	}
}

func playerHint(err error) (string, bool) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return msgGameNotFound, true
	case errors.Is(err, quiz.ErrNoQuestions):
		return msgGameUnavailable, true
	default:
		return "", false
	}
}
