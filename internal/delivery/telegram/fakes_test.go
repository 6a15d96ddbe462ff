package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/repository"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

// fakeBot records everything the handler sends.
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	updates  chan tgbotapi.Update
	sendErr  error
}

func newFakeBot() *fakeBot {
	return &fakeBot{nextID: 100, updates: make(chan tgbotapi.Update, 10)}
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) sentMessages() []tgbotapi.Chattable {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), b.sent...)
}

// lastToast returns the text of the last callback answer.
func (b *fakeBot) lastToast() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb.Text, true
		}
	}
	return "", false
}

type fakeGames struct {
	games []*entities.Game
}

func (g *fakeGames) List() []*entities.Game { return g.games }

func (g *fakeGames) Get(id string) (*entities.Game, error) {
	for _, game := range g.games {
		if game.ID == id {
			return game, nil
		}
	}
	return nil, repository.ErrGameNotFound
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) EnsureUser(ctx context.Context, userID, chatID int64, firstName string) error {
	return m.Called(ctx, userID, chatID, firstName).Error(0)
}

type mockQuizService struct {
	mock.Mock
}

func (m *mockQuizService) Start(ctx context.Context, userID, chatID int64, gameID string) (*storage.ActiveQuiz, error) {
	args := m.Called(ctx, userID, chatID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ActiveQuiz), args.Error(1)
}

func (m *mockQuizService) Answer(ctx context.Context, chatID int64, questionIndex int, optionID string) (entities.Choice, error) {
	args := m.Called(ctx, chatID, questionIndex, optionID)
	return args.Get(0).(entities.Choice), args.Error(1)
}

func (m *mockQuizService) Retry(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *mockQuizService) Proceed(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *mockQuizService) Active(chatID int64) (*storage.ActiveQuiz, bool) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*storage.ActiveQuiz), args.Bool(1)
}

type mockRewardService struct {
	mock.Mock
}

func (m *mockRewardService) Wallet(ctx context.Context, userID int64) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *mockRewardService) RecentResults(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.QuizResult), args.Error(1)
}

func testGames() []*entities.Game {
	return []*entities.Game{
		{
			ID:              "teeth",
			Title:           "Чистые зубки",
			Topic:           "Уход за зубами",
			CoinsPerCorrect: 5,
			NextGameID:      "hands",
			Questions: []entities.Question{
				{Prompt: "Сколько раз в день чистить зубы?", Options: []entities.Option{
					{ID: "a", Label: "Один раз", Icon: "1️⃣", Explanation: "Мало."},
					{ID: "b", Label: "Два раза", Icon: "2️⃣", Explanation: "Утром и вечером.", IsCorrect: true},
				}},
				{Prompt: "Сколько минут?", Options: []entities.Option{
					{ID: "a", Label: "Две", IsCorrect: true},
					{ID: "b", Label: "Десять секунд"},
				}},
			},
		},
		{
			ID:    "hands",
			Title: "Чистые ручки",
			Questions: []entities.Question{
				{Prompt: "Когда мыть руки?", Options: []entities.Option{
					{ID: "a", Label: "Перед едой", IsCorrect: true},
					{ID: "b", Label: "Никогда"},
				}},
			},
		},
	}
}

type handlerFixture struct {
	bot     *fakeBot
	users   *mockUserService
	quizzes *mockQuizService
	rewards *mockRewardService
	games   *fakeGames
	h       *Handler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		bot:     newFakeBot(),
		users:   new(mockUserService),
		quizzes: new(mockQuizService),
		rewards: new(mockRewardService),
		games:   &fakeGames{games: testGames()},
	}
	f.h = NewHandler(f.bot, zap.NewNop(), f.users, f.games, f.quizzes, f.rewards)
	return f
}
