package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

type mockResultRepository struct {
	mock.Mock
}

func (m *mockResultRepository) SaveWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *mockResultRepository) ListRecentByUserID(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.QuizResult), args.Error(1)
}

type mockWalletRepository struct {
	mock.Mock
}

func (m *mockWalletRepository) ApplyResultWithTx(ctx context.Context, tx pgx.Tx, result *entities.QuizResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *mockWalletRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Save(ctx context.Context, user *entities.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Store(chatID int64, q *storage.ActiveQuiz) { m.Called(chatID, q) }

func (m *mockSessionStore) Get(chatID int64) (*storage.ActiveQuiz, bool) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*storage.ActiveQuiz), args.Bool(1)
}

func (m *mockSessionStore) Delete(chatID int64) { m.Called(chatID) }

func (m *mockSessionStore) DisposeIdle(ttl time.Duration) []int64 {
	args := m.Called(ttl)
	return args.Get(0).([]int64)
}

func (m *mockSessionStore) Len() int {
	return m.Called().Int(0)
}

// fakeTransactor runs the callback without a database.
type fakeTransactor struct {
	calls int
	err   error
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

type metricCounts struct {
	started   int
	answers   int
	completed int
	coins     int
	disposed  int
	active    int
}

// countingMetrics counts the calls the tests care about.
type countingMetrics struct {
	mu sync.Mutex
	c  metricCounts
}

func (m *countingMetrics) SessionStarted(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.started++
}

func (m *countingMetrics) AnswerRecorded(string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.answers++
}

func (m *countingMetrics) CoinsAwarded(coins int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.coins += coins
}

func (m *countingMetrics) SessionCompleted(string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.completed++
}

func (m *countingMetrics) SessionsDisposed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.disposed += n
}

func (m *countingMetrics) SetActiveSessions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c.active = n
}

func (m *countingMetrics) counts() metricCounts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.c
}

// manualScheduler fires pending callbacks only when asked to.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) quiz.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{f: f}
	s.pending = append(s.pending, t)
	return t
}

func (s *manualScheduler) fireAll() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, t := range pending {
		if !t.stopped {
			t.f()
		}
	}
}

type recordingPresenter struct {
	mu     sync.Mutex
	views  []quiz.View
	intros []string
}

func (p *recordingPresenter) ShowQuiz(_ *storage.ActiveQuiz, v quiz.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, v)
}

func (p *recordingPresenter) ShowGameIntro(_ context.Context, _ int64, game *entities.Game) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intros = append(p.intros, game.ID)
	return nil
}

func (p *recordingPresenter) lastView() quiz.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.views[len(p.views)-1]
}
