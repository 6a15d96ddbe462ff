package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

func TestUserService_EnsureUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := NewUserService(repo, zap.NewNop())

	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.ID == 5 && u.ChatID == 50 && u.FirstName == "Аня" && u.IsActive
	})).Return(true, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(false, nil).Once()

	assert.NoError(t, svc.EnsureUser(context.Background(), 5, 50, "Аня"))
	assert.NoError(t, svc.EnsureUser(context.Background(), 5, 50, "Аня"))
	repo.AssertExpectations(t)
}

func TestUserService_EnsureUserError(t *testing.T) {
	repo := new(mockUserRepository)
	dbErr := errors.New("connection reset")
	repo.On("Save", mock.Anything, mock.Anything).Return(false, dbErr)

	err := NewUserService(repo, zap.NewNop()).EnsureUser(context.Background(), 5, 50, "")
	assert.ErrorIs(t, err, dbErr)
}
