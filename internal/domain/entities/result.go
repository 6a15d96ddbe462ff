package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult represents one completed run of a game by a user.
// It is stored together with the choices made during the run.
type QuizResult struct {
	ID          uuid.UUID // unique result ID
	UserID      int64     // user who played the game
	GameID      string    // catalog id of the game
	Attempt     int       // 1 for the first run, incremented on every retry
	Score       int       // number of correct answers
	MaxScore    int       // number of questions
	Coins       int       // coins awarded for the run
	Celebrated  bool      // whether the celebration threshold was met
	CompletedAt time.Time // timestamp when the run finished
	Choices     []Choice  // choices in answer order
}

// NewQuizResult creates a result for a finished run.
func NewQuizResult(userID int64, gameID string, attempt, score, maxScore, coins int, celebrated bool) *QuizResult {
	return &QuizResult{
		ID:          uuid.New(),
		UserID:      userID,
		GameID:      gameID,
		Attempt:     attempt,
		Score:       score,
		MaxScore:    maxScore,
		Coins:       coins,
		Celebrated:  celebrated,
		CompletedAt: time.Now(),
	}
}

// Accuracy returns the share of correct answers in percent.
func (r *QuizResult) Accuracy() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}
