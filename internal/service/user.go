package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

// UserService registers players on first contact.
type UserService struct {
	repository UserRepository
	logger     *zap.Logger
}

func NewUserService(repository UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repository: repository, logger: logger}
}

// EnsureUser creates the player on first contact and refreshes the chat,
// name and last seen time afterwards.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, firstName string) error {
	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID, firstName))
	if err != nil {
		return fmt.Errorf("ensure user %d: %w", userID, err)
	}

	if created {
		s.logger.Info("new player joined",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID))
	}

	return nil
}
