// Package quiz implements the session engine shared by all quiz games:
// one question at a time, one selection per question, a short feedback
// pause and a terminal finished state that can be retried.
package quiz

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

// State is the state of a session.
type State int

const (
	StateAwaitingAnswer State = iota // waiting for a selection on the current question
	StateFeedback                    // showing feedback, the next transition is scheduled
	StateFinished                    // all questions answered
	StateDisposed                    // torn down by its owner
)

func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateFeedback:
		return "feedback"
	case StateFinished:
		return "finished"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// View is a snapshot of a session for presentation.
type View struct {
	State    State
	Index    int // 0-based index of the current question
	Total    int
	Score    int
	Attempt  int
	Finished bool

	// Set once finished. Credited is false when the run's completion was
	// not signalled to the listener, so Coins were not awarded.
	Coins     int
	Credited  bool
	Celebrate bool

	Question   *entities.Question // nil once finished
	LastChoice *entities.Choice   // choice made on the current question, if any
	LastOption *entities.Option   // option behind LastChoice
}

// Session drives a fixed ordered list of questions.
type Session struct {
	mu     sync.Mutex
	emitMu sync.Mutex // held across a transition and its callbacks, taken before mu

	questions []entities.Question
	cfg       Config
	listener  RewardListener
	observer  Observer
	logger    *zap.Logger

	state       State
	index       int
	choices     []entities.Choice
	score       int
	attempt     int
	completions int
	credited    bool // completion of the current run was signalled

	timer      Timer
	generation uint64
}

// NewSession creates a session in AwaitingAnswer(0).
func NewSession(
	questions []entities.Question,
	cfg Config,
	listener RewardListener,
	logger *zap.Logger,
) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if listener == nil {
		listener = NopListener
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	qs := make([]entities.Question, len(questions))
	copy(qs, questions)

	for i, q := range qs {
		if q.IsMalformed() {
			logger.Warn("malformed question, it can not be answered correctly",
				zap.Int("question_index", i),
				zap.String("prompt", q.Prompt),
				zap.Int("correct_options", q.CorrectOptionCount()),
			)
		}
	}

	return &Session{
		questions: qs,
		cfg:       cfg.withDefaults(),
		listener:  listener,
		logger:    logger,
		state:     StateAwaitingAnswer,
		attempt:   1,
	}, nil
}

// OnChange registers an observer notified after every transition.
func (s *Session) OnChange(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Select records the choice of optionID for the current question.
// It is only valid while awaiting an answer; rejected calls leave the
// session untouched.
func (s *Session) Select(optionID string) (entities.Choice, error) {
	return s.selectAt(-1, optionID)
}

// SelectAt is Select for answers bound to the question at index. It fails
// with ErrStaleQuestion when the session has moved to another question.
func (s *Session) SelectAt(index int, optionID string) (entities.Choice, error) {
	if index < 0 {
		return entities.Choice{}, ErrStaleQuestion
	}
	return s.selectAt(index, optionID)
}

// selectAt checks index only when it is not negative.
func (s *Session) selectAt(index int, optionID string) (entities.Choice, error) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()

	if s.state == StateDisposed {
		s.mu.Unlock()
		return entities.Choice{}, ErrSessionDisposed
	}
	if index >= 0 && index != s.index {
		s.mu.Unlock()
		return entities.Choice{}, ErrStaleQuestion
	}
	if s.state != StateAwaitingAnswer {
		s.mu.Unlock()
		return entities.Choice{}, ErrNotAwaitingAnswer
	}

	q := s.questions[s.index]
	opt, ok := q.FindOption(optionID)
	if !ok {
		idx := s.index
		s.mu.Unlock()
		return entities.Choice{}, &InvalidOptionError{QuestionIndex: idx, OptionID: optionID}
	}

	// Questions without exactly one correct option are never scored.
	correct := opt.IsCorrect && !q.IsMalformed()
	choice := entities.NewChoice(s.index, opt.ID, correct, s.cfg.Clock())
	s.choices = append(s.choices, choice)
	if choice.IsCorrect {
		s.score++
	}
	s.state = StateFeedback

	s.generation++
	gen := s.generation
	s.timer = s.cfg.Scheduler.AfterFunc(s.cfg.FeedbackDelay, func() { s.advance(gen) })

	view := s.viewLocked()
	observer := s.observer
	reward := s.cfg.RewardPerCorrect
	s.mu.Unlock()

	if choice.IsCorrect {
		s.listener.OnCorrectAnswer(reward)
	}
	if observer != nil {
		observer(view)
	}

	return choice, nil
}

// advance leaves the feedback state. gen ties the call to the timer that
// scheduled it so stale timers are ignored.
func (s *Session) advance(gen uint64) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()

	if gen != s.generation || s.state != StateFeedback {
		s.mu.Unlock()
		return
	}
	s.timer = nil

	var completion *Completion
	if s.index+1 < len(s.questions) {
		s.index++
		s.state = StateAwaitingAnswer
	} else {
		s.state = StateFinished
		s.completions++
		if s.completions == 1 || s.cfg.CompletionPolicy == NotifyEveryRun {
			c := s.completionLocked()
			completion = &c
			s.credited = true
		}
	}

	view := s.viewLocked()
	observer := s.observer
	s.mu.Unlock()

	if completion != nil {
		s.listener.OnSessionComplete(*completion)
	}
	if observer != nil {
		observer(view)
	}
}

// Retry resets a finished session to its first question.
func (s *Session) Retry() error {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()

	switch s.state {
	case StateFinished:
	case StateDisposed:
		s.mu.Unlock()
		return ErrSessionDisposed
	default:
		s.mu.Unlock()
		return ErrNotFinished
	}

	s.index = 0
	s.choices = nil
	s.score = 0
	s.attempt++
	s.credited = false
	s.state = StateAwaitingAnswer

	view := s.viewLocked()
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(view)
	}

	return nil
}

// Dispose cancels any pending transition. It waits for callbacks that
// are already running, and no callbacks fire after it returns. It must
// not be called from a listener or an observer.
func (s *Session) Dispose() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDisposed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.state = StateDisposed
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the question awaiting or showing feedback.
// It returns false once the session is finished or disposed.
func (s *Session) Current() (entities.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinished || s.state == StateDisposed {
		return entities.Question{}, false
	}
	return s.questions[s.index], true
}

// Index returns the 0-based index of the current question.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Score returns the number of correct choices of the current run.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// MaxScore returns the number of questions.
func (s *Session) MaxScore() int {
	return len(s.questions)
}

// Attempt returns the 1-based number of the current run.
func (s *Session) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateFinished
}

// Choices returns a copy of the choices of the current run.
func (s *Session) Choices() []entities.Choice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Choice, len(s.choices))
	copy(out, s.choices)
	return out
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		State:    s.state,
		Index:    s.index,
		Total:    len(s.questions),
		Score:    s.score,
		Attempt:  s.attempt,
		Finished: s.state == StateFinished,
	}

	if v.Finished {
		v.Coins = s.score * s.cfg.RewardPerCorrect
		v.Credited = s.credited
		v.Celebrate = Celebrates(s.score, len(s.questions), s.cfg.CelebrationRatio)
	}

	if s.state == StateAwaitingAnswer || s.state == StateFeedback {
		q := s.questions[s.index]
		v.Question = &q
	}

	if n := len(s.choices); n > 0 && s.choices[n-1].QuestionIndex == s.index && s.state == StateFeedback {
		c := s.choices[n-1]
		v.LastChoice = &c
		if opt, ok := s.questions[s.index].FindOption(c.OptionID); ok {
			v.LastOption = &opt
		}
	}

	return v
}

func (s *Session) completionLocked() Completion {
	maxScore := len(s.questions)
	choices := make([]entities.Choice, len(s.choices))
	copy(choices, s.choices)

	return Completion{
		Score:     s.score,
		MaxScore:  maxScore,
		Coins:     s.score * s.cfg.RewardPerCorrect,
		Celebrate: Celebrates(s.score, maxScore, s.cfg.CelebrationRatio),
		Attempt:   s.attempt,
		Choices:   choices,
	}
}

// Celebrates reports whether score reaches ratio of maxScore.
func Celebrates(score, maxScore int, ratio float64) bool {
	if maxScore <= 0 {
		return false
	}
	threshold := int(math.Ceil(ratio*float64(maxScore) - 1e-9))
	return score >= threshold
}
