package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
)

type rewardFixture struct {
	tx      *fakeTransactor
	results *mockResultRepository
	wallets *mockWalletRepository
	metrics *countingMetrics
	svc     *RewardService
}

func newRewardFixture() *rewardFixture {
	f := &rewardFixture{
		tx:      &fakeTransactor{},
		results: new(mockResultRepository),
		wallets: new(mockWalletRepository),
		metrics: new(countingMetrics),
	}
	f.svc = NewRewardService(f.tx, f.results, f.wallets, f.metrics, zap.NewNop())
	return f
}

func TestRewardService_RecordResult(t *testing.T) {
	f := newRewardFixture()
	res := entities.NewQuizResult(1, "teeth", 1, 4, 5, 20, true)

	f.results.On("SaveWithTx", mock.Anything, mock.Anything, res).Return(nil).Once()
	f.wallets.On("ApplyResultWithTx", mock.Anything, mock.Anything, res).Return(nil).Once()

	require.NoError(t, f.svc.RecordResult(context.Background(), res))

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 20, f.metrics.counts().coins)
	f.results.AssertExpectations(t)
	f.wallets.AssertExpectations(t)
}

func TestRewardService_RecordResultWalletError(t *testing.T) {
	f := newRewardFixture()
	res := entities.NewQuizResult(1, "teeth", 1, 4, 5, 20, true)
	dbErr := errors.New("deadlock detected")

	f.results.On("SaveWithTx", mock.Anything, mock.Anything, res).Return(nil)
	f.wallets.On("ApplyResultWithTx", mock.Anything, mock.Anything, res).Return(dbErr)

	err := f.svc.RecordResult(context.Background(), res)
	assert.ErrorIs(t, err, dbErr)
	assert.Zero(t, f.metrics.counts().coins)
}

func TestRewardService_RecordResultTxError(t *testing.T) {
	f := newRewardFixture()
	f.tx.err = errors.New("begin tx: connection refused")

	err := f.svc.RecordResult(context.Background(), entities.NewQuizResult(1, "teeth", 1, 0, 5, 0, false))
	assert.ErrorIs(t, err, f.tx.err)
	f.results.AssertNotCalled(t, "SaveWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestRewardService_ListenerPersistsCompletion(t *testing.T) {
	f := newRewardFixture()
	choices := []entities.Choice{entities.NewChoice(0, "b", true, time.Now())}

	match := mock.MatchedBy(func(r *entities.QuizResult) bool {
		return r.UserID == 7 && r.GameID == "hands" && r.Attempt == 2 &&
			r.Score == 1 && r.MaxScore == 1 && r.Coins == 2 && r.Celebrated && len(r.Choices) == 1
	})
	f.results.On("SaveWithTx", mock.Anything, mock.Anything, match).Return(nil).Once()
	f.wallets.On("ApplyResultWithTx", mock.Anything, mock.Anything, match).Return(nil).Once()

	l := f.svc.Listener(7, "hands")
	l.OnCorrectAnswer(2)
	l.OnSessionComplete(quiz.Completion{
		Score:     1,
		MaxScore:  1,
		Coins:     2,
		Celebrate: true,
		Attempt:   2,
		Choices:   choices,
	})
	f.svc.Wait()

	f.results.AssertExpectations(t)
	f.wallets.AssertExpectations(t)
	assert.Equal(t, 1, f.metrics.counts().completed)
	assert.Equal(t, 2, f.metrics.counts().coins)
}

func TestRewardService_DropsResultsAfterWait(t *testing.T) {
	f := newRewardFixture()
	f.svc.Wait()

	f.svc.Listener(7, "hands").OnSessionComplete(quiz.Completion{Score: 1, MaxScore: 1, Coins: 2, Attempt: 1})
	f.svc.Wait()

	f.results.AssertNotCalled(t, "SaveWithTx", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, 1, f.metrics.counts().completed)
}

func TestRewardService_Reads(t *testing.T) {
	f := newRewardFixture()
	w := entities.NewWallet(3)
	w.Coins = 15
	recent := []*entities.QuizResult{entities.NewQuizResult(3, "teeth", 1, 3, 5, 15, false)}

	f.wallets.On("GetByUserID", mock.Anything, int64(3)).Return(w, nil)
	f.results.On("ListRecentByUserID", mock.Anything, int64(3), 5).Return(recent, nil)

	got, err := f.svc.Wallet(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Coins)

	list, err := f.svc.RecentResults(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
