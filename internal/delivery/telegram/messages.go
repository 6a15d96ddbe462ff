// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
)

// Error and hint messages.
const (
	msgInternalError   = "Что‑то пошло не так. Попробуйте позже."
	msgGameNotFound    = "Такой игры нет. Список игр: /games"
	msgGameUnavailable = "Эта игра пока недоступна. Выберите другую: /games"
	msgUsePlay         = "Используйте: /play teeth. Список игр: /games"
	msgNoGames         = "Игр пока нет. Загляните позже!"
	msgWalletEmpty     = "Пока нет ни одной пройденной игры. Начните с /games"
)

const msgRetryNotCredited = "🪙 За повторную игру монетки не начисляются"

// Callback toasts.
const (
	toastCorrect       = "✅ Верно!"
	toastIncorrect     = "❌ Не совсем"
	toastStaleQuestion = "Этот вопрос уже неактуален"
	toastWaitFeedback  = "Секундочку, сейчас будет следующий вопрос"
	toastNoActiveQuiz  = "Эта игра уже закончилась. Начните новую: /games"
	toastFinishFirst   = "Сначала закончите игру"
	toastLastGame      = "Это была последняя игра. Выберите любую: /games"
	toastUnknownAction = "Неизвестная команда"
	toastInternalError = "Что‑то пошло не так"
)

const (
	recentResultsLimit = 5
	scoreBarLength     = 10
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func msgWelcome(firstName string) string {
	var sb strings.Builder

	if firstName == "" {
		sb.WriteString(bold("👋 Привет!"))
	} else {
		sb.WriteString(bold(fmt.Sprintf("👋 Привет, %s!", firstName)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md("Я бот с весёлыми играми про здоровье: зубки, ручки, воду, сон и еду."))
	sb.WriteString("\n\n")
	sb.WriteString(md("За каждый правильный ответ вы получаете монетки 🪙, а за отличный результат — праздник 🎉."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Выберите игру ниже или нажмите /help."))

	return sb.String()
}

func msgHelp() string {
	var sb strings.Builder

	sb.WriteString(bold("📖 Как играть"))
	sb.WriteString("\n\n")
	sb.WriteString(md("1. /games — список игр."))
	sb.WriteString("\n")
	sb.WriteString(md("2. /play teeth — начать игру по её коду."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Отвечайте на вопросы кнопками под сообщением."))
	sb.WriteString("\n")
	sb.WriteString(md("4. /wallet — ваши монетки и последние результаты."))

	return sb.String()
}

func msgUnknownCommand() string {
	return md("Неизвестная команда. Список команд: /help")
}

// formatGamesList formats the game catalog.
func formatGamesList(games []*entities.Game) string {
	var sb strings.Builder

	sb.WriteString(bold("🎮 Игры"))
	for i, g := range games {
		sb.WriteString("\n\n")
		sb.WriteString(bold(fmt.Sprintf("%d. %s", i+1, g.Title)))
		if g.Topic != "" {
			sb.WriteString("\n")
			sb.WriteString(md(g.Topic))
		}
		sb.WriteString("\n")
		sb.WriteString(italic(fmt.Sprintf("/play %s · вопросов: %d", g.ID, g.MaxScore())))
	}

	return sb.String()
}

// formatGameIntro formats the screen shown before a game starts.
func formatGameIntro(game *entities.Game) string {
	var sb strings.Builder

	sb.WriteString(bold("🎮 " + game.Title))
	if game.Topic != "" {
		sb.WriteString("\n")
		sb.WriteString(md(game.Topic))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Вопросов: %d", game.MaxScore())))
	if game.CoinsPerCorrect > 0 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🪙 За правильный ответ: %d", game.CoinsPerCorrect)))
	}

	return sb.String()
}

// formatQuizView formats the current state of a quiz.
func formatQuizView(game *entities.Game, v quiz.View) string {
	if v.Finished {
		return formatQuizResult(game, v)
	}
	if v.Question == nil {
		return md("Игра остановлена.")
	}

	var sb strings.Builder

	sb.WriteString(bold(game.Title))
	sb.WriteString(md(fmt.Sprintf(" · вопрос %d из %d", v.Index+1, v.Total)))
	sb.WriteString("\n\n")
	sb.WriteString(bold(v.Question.Prompt))
	sb.WriteString("\n\n")

	if v.State == quiz.StateFeedback && v.LastChoice != nil {
		sb.WriteString(formatAnswerFeedback(v.Question, v.LastChoice, v.LastOption))
		sb.WriteString("\n\n")
	}

	sb.WriteString(md(fmt.Sprintf("⭐ Очки: %d", v.Score)))

	return sb.String()
}

// formatAnswerFeedback formats feedback for the chosen option.
func formatAnswerFeedback(q *entities.Question, choice *entities.Choice, opt *entities.Option) string {
	var sb strings.Builder

	if opt != nil {
		sb.WriteString(md("Ваш ответ: "))
		sb.WriteString(bold(optionText(*opt)))
		sb.WriteString("\n")
	}

	if choice.IsCorrect {
		sb.WriteString(md(toastCorrect))
	} else {
		sb.WriteString(md(toastIncorrect))
	}

	if opt != nil && opt.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(md(opt.Explanation))
	}

	if !choice.IsCorrect && !q.IsMalformed() {
		for _, o := range q.Options {
			if o.IsCorrect {
				sb.WriteString("\n\n")
				sb.WriteString(md("Правильный ответ: "))
				sb.WriteString(bold(optionText(o)))
				break
			}
		}
	}

	return sb.String()
}

// formatQuizResult formats the finished screen.
func formatQuizResult(game *entities.Game, v quiz.View) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("🏁 Игра «%s» пройдена!", game.Title)))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(v.Score, v.Total, scoreBarLength)))
	sb.WriteString("\n")
	sb.WriteString(md("Правильных ответов: "))
	sb.WriteString(bold(fmt.Sprintf("%d из %d", v.Score, v.Total)))
	sb.WriteString("\n")
	if v.Credited {
		sb.WriteString(md(fmt.Sprintf("🪙 Монетки: +%d", v.Coins)))
	} else {
		sb.WriteString(md(msgRetryNotCredited))
	}

	if v.Attempt > 1 {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("🔁 Попытка: %d", v.Attempt)))
	}

	sb.WriteString("\n\n")
	if v.Celebrate {
		sb.WriteString(bold("🎉 Ура! Отличный результат!"))
	} else {
		sb.WriteString(md("💪 Попробуйте ещё раз, у вас получится!"))
	}

	return sb.String()
}

// formatWallet formats the wallet screen with the latest results.
func formatWallet(w *entities.Wallet, recent []*entities.QuizResult, titles map[string]string) string {
	var sb strings.Builder

	sb.WriteString(bold("👛 Ваш кошелёк"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("🪙 Монетки: %d", w.Coins)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎮 Игр пройдено: %d", w.SessionsCompleted)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎉 Праздников: %d", w.Celebrations)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("🎯 Точность: %.0f%%", w.Accuracy())))

	if len(recent) == 0 {
		return sb.String()
	}

	sb.WriteString("\n\n")
	sb.WriteString(bold("Последние игры:"))
	for _, r := range recent {
		title := titles[r.GameID]
		if title == "" {
			title = r.GameID
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("• %s: %d/%d, +%d 🪙", title, r.Score, r.MaxScore, r.Coins)))
		if r.Celebrated {
			sb.WriteString(md(" 🎉"))
		}
	}

	return sb.String()
}

func optionText(o entities.Option) string {
	if o.Icon == "" {
		return o.Label
	}
	return o.Icon + " " + o.Label
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
