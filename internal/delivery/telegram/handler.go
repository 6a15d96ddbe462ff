package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot           Bot
	logger        *zap.Logger
	userService   UserService
	gameService   GameService
	quizService   QuizService
	rewardService RewardService
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	userService UserService,
	gameService GameService,
	quizService QuizService,
	rewardService RewardService,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		userService:   userService,
		gameService:   gameService,
		quizService:   quizService,
		rewardService: rewardService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, userID, chatID, update.Message.From.FirstName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.send(newMessage(chatID, msgUnknownCommand()))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(update.Message.From.FirstName))(ctx, chatID)

	case "games":
		_ = h.withErrorHandling(h.handleGames())(ctx, chatID)

	case "play":
		_ = h.withErrorHandling(h.handlePlay(userID, update.Message.CommandArguments()))(ctx, chatID)

	case "wallet":
		_ = h.withErrorHandling(h.handleWallet(userID))(ctx, chatID)

	case "help":
		_ = h.send(newMessage(chatID, msgHelp()))

	default:
		_ = h.send(newMessage(chatID, msgUnknownCommand()))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading state of a button, optionally with a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}
