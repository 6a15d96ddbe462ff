package entities

import "time"

// Choice is an immutable record of one answered question.
type Choice struct {
	QuestionIndex int       // 0-based index of the answered question
	OptionID      string    // id of the selected option
	IsCorrect     bool      // whether the selected option was correct
	AnsweredAt    time.Time // timestamp of the selection
}

// NewChoice creates a choice for the question at index.
func NewChoice(questionIndex int, optionID string, isCorrect bool, answeredAt time.Time) Choice {
	return Choice{
		QuestionIndex: questionIndex,
		OptionID:      optionID,
		IsCorrect:     isCorrect,
		AnsweredAt:    answeredAt,
	}
}
