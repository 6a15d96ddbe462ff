package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
)

const (
	maxConcurrentRewards = 10
	rewardWriteTimeout   = 5 * time.Second
)

// RewardService credits completed quizzes to player wallets.
type RewardService struct {
	transactor Transactor
	results    ResultRepository
	wallets    WalletRepository
	metrics    Metrics
	logger     *zap.Logger

	sem    chan struct{}
	mu     sync.Mutex // guards closed and wg.Add
	closed bool
	wg     sync.WaitGroup
}

// NewRewardService creates a new reward service.
func NewRewardService(
	transactor Transactor,
	results ResultRepository,
	wallets WalletRepository,
	metrics Metrics,
	logger *zap.Logger,
) *RewardService {
	return &RewardService{
		transactor: transactor,
		results:    results,
		wallets:    wallets,
		metrics:    metrics,
		logger:     logger,
		sem:        make(chan struct{}, maxConcurrentRewards),
	}
}

// RecordResult stores the result with its choices and updates the wallet
// in a single transaction.
func (s *RewardService) RecordResult(ctx context.Context, result *entities.QuizResult) error {
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.results.SaveWithTx(ctx, tx, result); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		if err := s.wallets.ApplyResultWithTx(ctx, tx, result); err != nil {
			return fmt.Errorf("apply result to wallet: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}

	s.metrics.CoinsAwarded(result.Coins)
	return nil
}

// Wallet returns the wallet of a user.
func (s *RewardService) Wallet(ctx context.Context, userID int64) (*entities.Wallet, error) {
	return s.wallets.GetByUserID(ctx, userID)
}

// RecentResults returns the latest results of a user, newest first.
func (s *RewardService) RecentResults(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	return s.results.ListRecentByUserID(ctx, userID, limit)
}

// Listener returns a reward listener bound to one player and game.
func (s *RewardService) Listener(userID int64, gameID string) quiz.RewardListener {
	return &rewardListener{service: s, userID: userID, gameID: gameID}
}

// Wait stops accepting new results and blocks until all pending reward
// writes are finished.
func (s *RewardService) Wait() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}

// recordAsync persists a result without blocking the session. Results
// arriving after Wait are dropped with an error log.
func (s *RewardService) recordAsync(result *entities.QuizResult) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Error("reward service is closed, quiz result dropped",
			zap.Int64("user_id", result.UserID),
			zap.String("game_id", result.GameID),
			zap.Int("score", result.Score))
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		ctx, cancel := context.WithTimeout(context.Background(), rewardWriteTimeout)
		defer cancel()

		if err := s.RecordResult(ctx, result); err != nil {
			s.logger.Error("failed to record quiz result",
				zap.Int64("user_id", result.UserID),
				zap.String("game_id", result.GameID),
				zap.Int("score", result.Score),
				zap.Error(err))
			return
		}

		s.logger.Info("quiz result recorded",
			zap.Int64("user_id", result.UserID),
			zap.String("game_id", result.GameID),
			zap.Int("attempt", result.Attempt),
			zap.Int("coins", result.Coins),
			zap.Bool("celebrated", result.Celebrated))
	}()
}

type rewardListener struct {
	service *RewardService
	userID  int64
	gameID  string
}

func (l *rewardListener) OnCorrectAnswer(reward int) {
	l.service.logger.Debug("correct answer",
		zap.Int64("user_id", l.userID),
		zap.String("game_id", l.gameID),
		zap.Int("reward", reward))
}

func (l *rewardListener) OnSessionComplete(c quiz.Completion) {
	l.service.metrics.SessionCompleted(l.gameID, c.Celebrate)

	result := entities.NewQuizResult(l.userID, l.gameID, c.Attempt, c.Score, c.MaxScore, c.Coins, c.Celebrate)
	result.Choices = c.Choices

	l.service.recordAsync(result)
}
