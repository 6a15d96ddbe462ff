package service

import (
	"math/rand"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

// GameService exposes the game catalog.
type GameService struct {
	repo GameRepository
}

func NewGameService(repo GameRepository) *GameService {
	return &GameService{repo: repo}
}

// List returns all games in catalog order.
func (s *GameService) List() []*entities.Game {
	return s.repo.GetAll()
}

// Get returns a game by id.
func (s *GameService) Get(id string) (*entities.Game, error) {
	return s.repo.GetByID(id)
}

// PrepareQuestions returns the questions of a game for a new session.
// The catalog data is never modified; option order is shuffled on a copy
// when the game asks for it.
func PrepareQuestions(game *entities.Game) []entities.Question {
	questions := make([]entities.Question, len(game.Questions))
	for i, q := range game.Questions {
		options := make([]entities.Option, len(q.Options))
		copy(options, q.Options)

		if game.ShuffleOptions {
			rand.Shuffle(len(options), func(i, j int) {
				options[i], options[j] = options[j], options[i]
			})
		}

		questions[i] = entities.Question{Prompt: q.Prompt, Options: options}
	}
	return questions
}
