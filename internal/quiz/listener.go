package quiz

import "github.com/aliskhannn/health-quiz-bot/internal/domain/entities"

// Completion describes a finished run.
type Completion struct {
	Score     int
	MaxScore  int
	Coins     int  // Score multiplied by the reward per correct answer
	Celebrate bool // Score reached the celebration threshold
	Attempt   int  // 1-based run number within the session
	Choices   []entities.Choice
}

// RewardListener receives reward signals of a session.
//
// Callbacks run after the state transition has been committed, outside the
// session lock, and must not call Select or Retry on the same session
// synchronously.
type RewardListener interface {
	OnCorrectAnswer(reward int)
	OnSessionComplete(c Completion)
}

// Observer is notified with a fresh view after every state change.
type Observer func(v View)

type nopListener struct{}

func (nopListener) OnCorrectAnswer(int)          {}
func (nopListener) OnSessionComplete(Completion) {}

// NopListener ignores all signals.
var NopListener RewardListener = nopListener{}
