package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/health-quiz-bot/internal/repository"
)

const testCatalog = `{
  "games": [
    {
      "id": "teeth",
      "title": "Чистые зубки",
      "coins_per_correct": 5,
      "next_game_id": "hands",
      "questions": [
        {"prompt": "Сколько раз в день чистить зубы?", "options": [
          {"id": "a", "label": "Один"},
          {"id": "b", "label": "Два", "is_correct": true}
        ]},
        {"prompt": "Сколько минут?", "options": [
          {"id": "a", "label": "Две", "is_correct": true},
          {"id": "b", "label": "Десять секунд"}
        ]}
      ]
    },
    {
      "id": "hands",
      "title": "Чистые ручки",
      "coins_per_correct": 2,
      "celebration_ratio": 1,
      "questions": [
        {"prompt": "Когда мыть руки?", "options": [
          {"id": "a", "label": "Перед едой", "is_correct": true},
          {"id": "b", "label": "Никогда"}
        ]}
      ]
    }
  ]
}`

func newTestGames(t *testing.T) *repository.GameRepository {
	t.Helper()
	repo, err := repository.NewGameRepositoryFromJSON([]byte(testCatalog))
	require.NoError(t, err)
	return repo
}
