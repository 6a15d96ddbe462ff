package telegram

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/service"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

var _ service.Presenter = (*Handler)(nil)

// ShowQuiz renders a quiz view. The first view of a quiz is sent as a new
// message, later views edit it in place.
func (h *Handler) ShowQuiz(active *storage.ActiveQuiz, v quiz.View) {
	if v.State == quiz.StateDisposed {
		return
	}

	text := formatQuizView(active.Game, v)
	kb := quizKeyboard(v, h.nextGameTitle(active, v))

	msgID := active.MessageID()
	if msgID == 0 {
		msg := newMessage(active.ChatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}

		sent, err := h.bot.Send(msg)
		if err != nil {
			h.logger.Error("failed to send quiz",
				zap.Int64("chat_id", active.ChatID),
				zap.String("game_id", active.Game.ID),
				zap.Error(err),
			)
			return
		}

		active.SetMessageID(sent.MessageID)
		return
	}

	edit := newEdit(active.ChatID, msgID, text)
	edit.ReplyMarkup = kb
	_ = h.send(edit)
}

// ShowGameIntro sends the intro screen of a game.
func (h *Handler) ShowGameIntro(_ context.Context, chatID int64, game *entities.Game) error {
	msg := newMessage(chatID, formatGameIntro(game))
	msg.ReplyMarkup = buildGameIntroKeyboard(game)
	return h.send(msg)
}

func (h *Handler) nextGameTitle(active *storage.ActiveQuiz, v quiz.View) string {
	if !v.Finished || active.Gate == nil || active.Gate.Target() == "" {
		return ""
	}

	next, err := h.gameService.Get(active.Gate.Target())
	if err != nil {
		h.logger.Warn("next game is missing",
			zap.String("game_id", active.Game.ID),
			zap.String("next_game_id", active.Gate.Target()),
		)
		return ""
	}

	return next.Title
}
