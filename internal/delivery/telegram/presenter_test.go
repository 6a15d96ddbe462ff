package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

func newActive(t *testing.T, gameIdx int) *storage.ActiveQuiz {
	t.Helper()
	game := testGames()[gameIdx]
	s, err := quiz.NewSession(game.Questions, quiz.Config{FeedbackDelay: time.Hour}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(s.Dispose)

	gate := quiz.NewGate(s, quiz.NavigatorFunc(func(context.Context, string) error { return nil }), game.NextGameID)
	return storage.NewActiveQuiz(game, s, gate, 2, 1)
}

func TestShowQuiz_SendsThenEdits(t *testing.T) {
	f := newHandlerFixture()
	active := newActive(t, 0)

	f.h.ShowQuiz(active, active.Session.View())

	sent := f.bot.sentMessages()
	require.Len(t, sent, 1)
	msg, ok := sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(1), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdownV2, msg.ParseMode)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)
	require.NotNil(t, kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "quiz:0:b", *kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, 101, active.MessageID())

	_, err := active.Session.Select("b")
	require.NoError(t, err)
	f.h.ShowQuiz(active, active.Session.View())

	sent = f.bot.sentMessages()
	require.Len(t, sent, 2)
	edit, ok := sent[1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 101, edit.MessageID)
	assert.Nil(t, edit.ReplyMarkup)
	assert.Contains(t, edit.Text, md(toastCorrect))
}

func TestShowQuiz_FinishedOffersNextGame(t *testing.T) {
	f := newHandlerFixture()
	active := newActive(t, 0)
	active.SetMessageID(55)

	v := quiz.View{State: quiz.StateFinished, Finished: true, Score: 2, Total: 2}
	f.h.ShowQuiz(active, v)

	edit := f.bot.sentMessages()[0].(tgbotapi.EditMessageTextConfig)
	require.NotNil(t, edit.ReplyMarkup)

	var data []string
	var labels []string
	for _, row := range edit.ReplyMarkup.InlineKeyboard {
		data = append(data, *row[0].CallbackData)
		labels = append(labels, row[0].Text)
	}
	assert.Equal(t, []string{"retry", "next", "games"}, data)
	assert.Contains(t, labels[1], "Чистые ручки")
}

func TestShowQuiz_LastGameHasNoNextButton(t *testing.T) {
	f := newHandlerFixture()
	active := newActive(t, 1)
	active.SetMessageID(55)

	f.h.ShowQuiz(active, quiz.View{State: quiz.StateFinished, Finished: true, Score: 1, Total: 1})

	edit := f.bot.sentMessages()[0].(tgbotapi.EditMessageTextConfig)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 2)
}

func TestShowQuiz_DisposedIsIgnored(t *testing.T) {
	f := newHandlerFixture()
	active := newActive(t, 0)

	f.h.ShowQuiz(active, quiz.View{State: quiz.StateDisposed})
	assert.Empty(t, f.bot.sentMessages())
}

func TestShowQuiz_SendErrorKeepsMessageUnbound(t *testing.T) {
	f := newHandlerFixture()
	f.bot.sendErr = errors.New("bot was blocked by the user")
	active := newActive(t, 0)

	f.h.ShowQuiz(active, active.Session.View())
	assert.Zero(t, active.MessageID())
}

func TestShowGameIntro(t *testing.T) {
	f := newHandlerFixture()

	require.NoError(t, f.h.ShowGameIntro(context.Background(), 1, testGames()[1]))

	msg := f.bot.sentMessages()[0].(tgbotapi.MessageConfig)
	assert.Contains(t, msg.Text, "Чистые ручки")
	kb := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.Equal(t, "game:hands", *kb.InlineKeyboard[0][0].CallbackData)
}

func TestShowQuiz_RetriedRunShowsNoCoins(t *testing.T) {
	f := newHandlerFixture()
	active := newActive(t, 1)
	active.SetMessageID(55)

	f.h.ShowQuiz(active, quiz.View{
		State: quiz.StateFinished, Finished: true, Score: 1, Total: 1, Coins: 2, Credited: true, Attempt: 1,
	})
	f.h.ShowQuiz(active, quiz.View{
		State: quiz.StateFinished, Finished: true, Score: 1, Total: 1, Coins: 2, Attempt: 2,
	})

	sent := f.bot.sentMessages()
	require.Len(t, sent, 2)
	first := sent[0].(tgbotapi.EditMessageTextConfig)
	second := sent[1].(tgbotapi.EditMessageTextConfig)
	assert.Contains(t, first.Text, `Монетки: \+2`)
	assert.NotContains(t, second.Text, `Монетки: \+2`)
	assert.Contains(t, second.Text, md(msgRetryNotCredited))
}
