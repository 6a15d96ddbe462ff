// Package entities contains domain entities used across the application.
package entities

// Option is one of the answers offered for a question.
type Option struct {
	ID          string `json:"id"`          // stable identifier, unique within a question
	Label       string `json:"label"`       // text shown on the answer button
	Icon        string `json:"icon"`        // optional emoji shown next to the label
	Explanation string `json:"explanation"` // feedback text shown after the option is picked
	IsCorrect   bool   `json:"is_correct"`  // whether picking this option counts as a correct answer
}

// Question is a single multiple-choice question of a game.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// FindOption returns the option with the given id.
func (q Question) FindOption(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// CorrectOptionCount returns how many options are flagged as correct.
func (q Question) CorrectOptionCount() int {
	n := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// IsMalformed reports whether the question does not have exactly one correct option.
func (q Question) IsMalformed() bool {
	return q.CorrectOptionCount() != 1
}

// Game is a data table describing one quiz mini-game of the catalog.
type Game struct {
	ID               string     `json:"id"`                // catalog identifier, used in callbacks and commands
	Title            string     `json:"title"`             // title shown on the intro screen
	Topic            string     `json:"topic"`             // short description of the health topic
	Questions        []Question `json:"questions"`         // ordered questions of the game
	CoinsPerCorrect  int        `json:"coins_per_correct"` // reward for every correct answer
	CelebrationRatio float64    `json:"celebration_ratio"` // share of max score needed for a celebration, 0 means default
	NextGameID       string     `json:"next_game_id"`      // game opened by the "next" button, empty for the last one
	ShuffleOptions   bool       `json:"shuffle_options"`   // shuffle option order when a session starts
}

// MaxScore returns the best possible score of the game.
func (g *Game) MaxScore() int {
	return len(g.Questions)
}

// HasNext reports whether the game hands off to another game.
func (g *Game) HasNext() bool {
	return g.NextGameID != ""
}
