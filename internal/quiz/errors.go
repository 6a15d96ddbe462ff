package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestions       = errors.New("quiz has no questions")
	ErrInvalidOption     = errors.New("option does not belong to the current question")
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	ErrStaleQuestion     = errors.New("answer belongs to another question")
	ErrNotFinished       = errors.New("session is not finished")
	ErrSessionDisposed   = errors.New("session is disposed")
	ErrNoTarget          = errors.New("no next screen to proceed to")
)

// InvalidOptionError is returned when a selection references an option id
// that is not part of the current question.
type InvalidOptionError struct {
	QuestionIndex int
	OptionID      string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid option %q for question %d", e.OptionID, e.QuestionIndex)
}

// Is makes errors.Is(err, ErrInvalidOption) match.
func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}
