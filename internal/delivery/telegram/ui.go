package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
)

// buildGamesKeyboard builds one button per game.
func buildGamesKeyboard(games []*entities.Game) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, g := range games {
		button := tgbotapi.NewInlineKeyboardButtonData("🎮 "+g.Title, buildGameCallback(g.ID))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildGameIntroKeyboard builds keyboard for the game intro screen.
func buildGameIntroKeyboard(game *entities.Game) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Играть", buildGameCallback(game.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Все игры", buildGamesCallback()),
		),
	)
}

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(q *entities.Question, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, option := range q.Options {
		callbackData := buildQuizAnswerCallback(questionIndex, option.ID)
		button := tgbotapi.NewInlineKeyboardButtonData(optionText(option), callbackData)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for the finished screen.
// nextTitle is empty when there is no next game.
func buildQuizResultKeyboard(nextTitle string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Сыграть ещё раз", buildRetryCallback()),
		),
	}

	if nextTitle != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Дальше: "+nextTitle+" ▶️", buildNextCallback()),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📋 Все игры", buildGamesCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildWalletKeyboard builds keyboard for the wallet screen.
func buildWalletKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎮 Играть", buildGamesCallback()),
		),
	)
}

// quizKeyboard returns the keyboard matching a view. Feedback has no
// buttons so a second answer cannot be sent.
func quizKeyboard(v quiz.View, nextTitle string) *tgbotapi.InlineKeyboardMarkup {
	switch {
	case v.Finished:
		kb := buildQuizResultKeyboard(nextTitle)
		return &kb
	case v.State == quiz.StateAwaitingAnswer && v.Question != nil:
		kb := buildQuizAnswerKeyboard(v.Question, v.Index)
		return &kb
	default:
		return nil
	}
}
