package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrEmptyCatalog = errors.New("game catalog is empty")
)

// GameRepository provides access to the game catalog.
// Games are loaded once from a JSON file and kept in memory in file order.
type GameRepository struct {
	games []*entities.Game
	byID  map[string]*entities.Game
}

// NewGameRepository loads the catalog from path.
func NewGameRepository(path string) (*GameRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read games file: %w", err)
	}

	return NewGameRepositoryFromJSON(data)
}

// NewGameRepositoryFromJSON builds the catalog from raw JSON.
func NewGameRepositoryFromJSON(data []byte) (*GameRepository, error) {
	var wrapper struct {
		Games []*entities.Game `json:"games"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal games JSON: %w", err)
	}

	if len(wrapper.Games) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]*entities.Game, len(wrapper.Games))
	for _, g := range wrapper.Games {
		if g.ID == "" {
			return nil, fmt.Errorf("game %q has no id", g.Title)
		}
		if _, dup := byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q", g.ID)
		}
		byID[g.ID] = g
	}

	return &GameRepository{
		games: wrapper.Games,
		byID:  byID,
	}, nil
}

// GetByID returns the game with the given id.
func (r *GameRepository) GetByID(id string) (*entities.Game, error) {
	g, ok := r.byID[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// GetAll returns all games in catalog order.
func (r *GameRepository) GetAll() []*entities.Game {
	return r.games
}
