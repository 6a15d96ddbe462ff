package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	cd := decodeCallback(cb.Data)

	// Group members may press buttons before they ever write to the bot.
	if err := h.userService.EnsureUser(ctx, userID, chatID, cb.From.FirstName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	var toast string

	switch cd.Action {
	case actionGame:
		if len(cd.Params) != 1 {
			toast = toastUnknownAction
			break
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			return h.startGame(ctx, userID, chatID, cd.Params[0])
		})(ctx, chatID)

	case actionGames:
		_ = h.withErrorHandling(h.handleGames())(ctx, chatID)

	case actionQuiz:
		toast = h.handleAnswerCallback(ctx, cb, cd)

	case actionRetry:
		toast = h.handleRetryCallback(ctx, cb)

	case actionNext:
		toast = h.handleNextCallback(ctx, cb)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
		toast = toastUnknownAction
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// handleAnswerCallback records an answer. The quiz message is re-rendered
// by the presenter; the returned text is shown as a toast.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) string {
	chatID := cb.Message.Chat.ID

	qIdx, optionID, err := parseQuizAnswer(cd)
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.Error(err))
		return toastUnknownAction
	}

	if toast, ok := h.checkQuizMessage(chatID, cb.Message.MessageID); !ok {
		return toast
	}

	choice, err := h.quizService.Answer(ctx, chatID, qIdx, optionID)
	switch {
	case err == nil:
		if choice.IsCorrect {
			return toastCorrect
		}
		return toastIncorrect
	case errors.Is(err, service.ErrNoActiveQuiz):
		return toastNoActiveQuiz
	case errors.Is(err, quiz.ErrStaleQuestion), errors.Is(err, quiz.ErrInvalidOption):
		return toastStaleQuestion
	case errors.Is(err, quiz.ErrNotAwaitingAnswer):
		return toastWaitFeedback
	case errors.Is(err, quiz.ErrSessionDisposed):
		return toastNoActiveQuiz
	default:
		h.logger.Error("failed to record answer",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		return toastInternalError
	}
}

func (h *Handler) handleRetryCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) string {
	chatID := cb.Message.Chat.ID

	if toast, ok := h.checkQuizMessage(chatID, cb.Message.MessageID); !ok {
		return toast
	}

	err := h.quizService.Retry(ctx, chatID)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNoActiveQuiz), errors.Is(err, quiz.ErrSessionDisposed):
		return toastNoActiveQuiz
	case errors.Is(err, quiz.ErrNotFinished):
		return toastFinishFirst
	default:
		h.logger.Error("failed to retry quiz", zap.Int64("chat_id", chatID), zap.Error(err))
		return toastInternalError
	}
}

func (h *Handler) handleNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) string {
	chatID := cb.Message.Chat.ID

	if toast, ok := h.checkQuizMessage(chatID, cb.Message.MessageID); !ok {
		return toast
	}

	err := h.quizService.Proceed(ctx, chatID)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNoActiveQuiz):
		return toastNoActiveQuiz
	case errors.Is(err, quiz.ErrNotFinished):
		return toastFinishFirst
	case errors.Is(err, quiz.ErrNoTarget):
		return toastLastGame
	default:
		h.logger.Error("failed to open next game", zap.Int64("chat_id", chatID), zap.Error(err))
		return toastInternalError
	}
}

// checkQuizMessage rejects buttons of messages that no longer show the
// chat's active quiz.
func (h *Handler) checkQuizMessage(chatID int64, messageID int) (string, bool) {
	active, ok := h.quizService.Active(chatID)
	if !ok {
		return toastNoActiveQuiz, false
	}
	if active.MessageID() != messageID {
		return toastStaleQuestion, false
	}
	return "", true
}
