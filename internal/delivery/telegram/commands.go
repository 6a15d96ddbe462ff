package telegram

import (
	"context"
	"strings"
)

// handleStart greets the player and shows the games.
func (h *Handler) handleStart(firstName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, msgWelcome(firstName))
		if games := h.gameService.List(); len(games) > 0 {
			msg.ReplyMarkup = buildGamesKeyboard(games)
		}
		return h.send(msg)
	}
}

// handleGames lists the game catalog.
func (h *Handler) handleGames() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		games := h.gameService.List()
		if len(games) == 0 {
			return h.send(newPlainMessage(chatID, msgNoGames))
		}

		msg := newMessage(chatID, formatGamesList(games))
		msg.ReplyMarkup = buildGamesKeyboard(games)
		return h.send(msg)
	}
}

// handlePlay starts the game named in the command arguments.
func (h *Handler) handlePlay(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		gameID := strings.TrimSpace(args)
		if gameID == "" {
			return h.send(newPlainMessage(chatID, msgUsePlay))
		}

		return h.startGame(ctx, userID, chatID, gameID)
	}
}

// startGame replaces the chat's quiz with a new session of gameID.
// The first question is rendered by the presenter; unknown and empty
// games are answered by withErrorHandling.
func (h *Handler) startGame(ctx context.Context, userID, chatID int64, gameID string) error {
	_, err := h.quizService.Start(ctx, userID, chatID, gameID)
	return err
}

// handleWallet shows the player's coins and latest results.
func (h *Handler) handleWallet(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		wallet, err := h.rewardService.Wallet(ctx, userID)
		if err != nil {
			return err
		}

		recent, err := h.rewardService.RecentResults(ctx, userID, recentResultsLimit)
		if err != nil {
			return err
		}

		if wallet.SessionsCompleted == 0 && len(recent) == 0 {
			msg := newPlainMessage(chatID, msgWalletEmpty)
			msg.ReplyMarkup = buildWalletKeyboard()
			return h.send(msg)
		}

		titles := make(map[string]string)
		for _, g := range h.gameService.List() {
			titles[g.ID] = g.Title
		}

		msg := newMessage(chatID, formatWallet(wallet, recent, titles))
		msg.ReplyMarkup = buildWalletKeyboard()
		return h.send(msg)
	}
}
