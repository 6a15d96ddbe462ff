package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/health-quiz-bot/internal/quiz"
	"github.com/aliskhannn/health-quiz-bot/internal/storage"
)

var ErrNoActiveQuiz = errors.New("no active quiz")

// QuizService runs quiz sessions for chats.
type QuizService struct {
	games     GameRepository
	rewards   *RewardService
	store     SessionStore
	metrics   Metrics
	base      quiz.Config
	presenter Presenter
	logger    *zap.Logger
}

// NewQuizService creates a new quiz service. base carries the engine
// settings shared by all games; reward and celebration ratio are taken
// from each game when it sets them.
func NewQuizService(
	games GameRepository,
	rewards *RewardService,
	store SessionStore,
	metrics Metrics,
	base quiz.Config,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		games:   games,
		rewards: rewards,
		store:   store,
		metrics: metrics,
		base:    base,
		logger:  logger,
	}
}

// SetPresenter sets the presenter (called after handler is created).
func (s *QuizService) SetPresenter(presenter Presenter) {
	s.presenter = presenter
}

// Start begins a new session of gameID in a chat, replacing the
// previous one.
func (s *QuizService) Start(ctx context.Context, userID, chatID int64, gameID string) (*storage.ActiveQuiz, error) {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return nil, fmt.Errorf("get game %s: %w", gameID, err)
	}

	session, err := quiz.NewSession(
		PrepareQuestions(game),
		s.configFor(game),
		s.rewards.Listener(userID, game.ID),
		s.logger.With(zap.String("game_id", game.ID), zap.Int64("chat_id", chatID)),
	)
	if err != nil {
		return nil, fmt.Errorf("create session for %s: %w", gameID, err)
	}

	gate := quiz.NewGate(session, quiz.NavigatorFunc(func(ctx context.Context, target string) error {
		return s.openGame(ctx, chatID, target)
	}), game.NextGameID)

	active := storage.NewActiveQuiz(game, session, gate, userID, chatID)
	session.OnChange(func(v quiz.View) {
		if s.presenter != nil {
			s.presenter.ShowQuiz(active, v)
		}
	})

	s.store.Store(chatID, active)
	s.metrics.SessionStarted(game.ID)
	s.metrics.SetActiveSessions(s.store.Len())

	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("game_id", game.ID))

	if s.presenter != nil {
		s.presenter.ShowQuiz(active, session.View())
	}

	return active, nil
}

// Answer selects optionID on question questionIndex of the chat's quiz.
// Answers from keyboards of other questions fail with quiz.ErrStaleQuestion.
func (s *QuizService) Answer(_ context.Context, chatID int64, questionIndex int, optionID string) (entities.Choice, error) {
	active, ok := s.store.Get(chatID)
	if !ok {
		return entities.Choice{}, ErrNoActiveQuiz
	}

	choice, err := active.Session.SelectAt(questionIndex, optionID)
	if err != nil {
		return entities.Choice{}, err
	}

	s.metrics.AnswerRecorded(active.Game.ID, choice.IsCorrect)
	return choice, nil
}

// Retry restarts the finished quiz of a chat.
func (s *QuizService) Retry(_ context.Context, chatID int64) error {
	active, ok := s.store.Get(chatID)
	if !ok {
		return ErrNoActiveQuiz
	}

	if err := active.Session.Retry(); err != nil {
		return err
	}

	s.metrics.SessionStarted(active.Game.ID)
	return nil
}

// Proceed hands the chat over to the next game of the finished quiz.
func (s *QuizService) Proceed(ctx context.Context, chatID int64) error {
	active, ok := s.store.Get(chatID)
	if !ok {
		return ErrNoActiveQuiz
	}

	return active.Gate.Proceed(ctx)
}

// Active returns the quiz running in a chat.
func (s *QuizService) Active(chatID int64) (*storage.ActiveQuiz, bool) {
	return s.store.Get(chatID)
}

// Stop disposes the quiz of a chat.
func (s *QuizService) Stop(chatID int64) {
	s.store.Delete(chatID)
	s.metrics.SetActiveSessions(s.store.Len())
}

func (s *QuizService) openGame(ctx context.Context, chatID int64, gameID string) error {
	game, err := s.games.GetByID(gameID)
	if err != nil {
		return fmt.Errorf("get game %s: %w", gameID, err)
	}

	s.Stop(chatID)

	if s.presenter == nil {
		return nil
	}
	return s.presenter.ShowGameIntro(ctx, chatID, game)
}

func (s *QuizService) configFor(game *entities.Game) quiz.Config {
	cfg := s.base
	cfg.RewardPerCorrect = game.CoinsPerCorrect
	if game.CelebrationRatio > 0 {
		cfg.CelebrationRatio = game.CelebrationRatio
	}
	return cfg
}
