package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/health-quiz-bot/internal/domain/entities"
)

// IssueKind classifies a content problem.
type IssueKind string

const (
	IssueNoQuestions     IssueKind = "no_questions"
	IssueEmptyPrompt     IssueKind = "empty_prompt"
	IssueTooFewOptions   IssueKind = "too_few_options"
	IssueNoCorrectOption IssueKind = "no_correct_option"
	IssueMultipleCorrect IssueKind = "multiple_correct_options"
	IssueDuplicateOption IssueKind = "duplicate_option_id"
	IssueUnknownNextGame IssueKind = "unknown_next_game"
	IssueNegativeReward  IssueKind = "negative_reward"
	IssueBadCelebration  IssueKind = "bad_celebration_ratio"
)

// ContentIssue is a catalog row that needs review by the content owner.
// QuestionIndex is -1 for game-level issues.
type ContentIssue struct {
	GameID        string
	QuestionIndex int
	Kind          IssueKind
	Detail        string
}

func (i ContentIssue) String() string {
	if i.QuestionIndex < 0 {
		return fmt.Sprintf("%s: %s (%s)", i.GameID, i.Kind, i.Detail)
	}
	return fmt.Sprintf("%s#%d: %s (%s)", i.GameID, i.QuestionIndex, i.Kind, i.Detail)
}

// ContentValidator reports inconsistent catalog data. It never fixes
// anything: the data stays authoritative and rows are only flagged.
type ContentValidator struct {
	logger *zap.Logger
}

func NewContentValidator(logger *zap.Logger) *ContentValidator {
	return &ContentValidator{logger: logger}
}

// Validate checks every game of the catalog.
func (v *ContentValidator) Validate(games []*entities.Game) []ContentIssue {
	known := make(map[string]struct{}, len(games))
	for _, g := range games {
		known[g.ID] = struct{}{}
	}

	var issues []ContentIssue
	for _, g := range games {
		issues = append(issues, v.validateGame(g, known)...)
	}

	return issues
}

// Report validates the catalog and logs every issue.
func (v *ContentValidator) Report(games []*entities.Game) []ContentIssue {
	issues := v.Validate(games)
	for _, issue := range issues {
		v.logger.Warn("content needs review",
			zap.String("game_id", issue.GameID),
			zap.Int("question_index", issue.QuestionIndex),
			zap.String("kind", string(issue.Kind)),
			zap.String("detail", issue.Detail),
		)
	}
	if len(issues) == 0 {
		v.logger.Info("game catalog validated", zap.Int("games", len(games)))
	}
	return issues
}

func (v *ContentValidator) validateGame(g *entities.Game, known map[string]struct{}) []ContentIssue {
	var issues []ContentIssue
	gameIssue := func(kind IssueKind, detail string) {
		issues = append(issues, ContentIssue{GameID: g.ID, QuestionIndex: -1, Kind: kind, Detail: detail})
	}

	if len(g.Questions) == 0 {
		gameIssue(IssueNoQuestions, "game has no questions")
	}
	if g.CoinsPerCorrect < 0 {
		gameIssue(IssueNegativeReward, fmt.Sprintf("coins_per_correct=%d", g.CoinsPerCorrect))
	}
	if g.CelebrationRatio < 0 || g.CelebrationRatio > 1 {
		gameIssue(IssueBadCelebration, fmt.Sprintf("celebration_ratio=%.2f", g.CelebrationRatio))
	}
	if g.HasNext() {
		if _, ok := known[g.NextGameID]; !ok {
			gameIssue(IssueUnknownNextGame, g.NextGameID)
		}
	}

	for i, q := range g.Questions {
		issues = append(issues, validateQuestion(g.ID, i, q)...)
	}

	return issues
}

func validateQuestion(gameID string, idx int, q entities.Question) []ContentIssue {
	var issues []ContentIssue
	add := func(kind IssueKind, detail string) {
		issues = append(issues, ContentIssue{GameID: gameID, QuestionIndex: idx, Kind: kind, Detail: detail})
	}

	if strings.TrimSpace(q.Prompt) == "" {
		add(IssueEmptyPrompt, "prompt is empty")
	}
	if len(q.Options) < 2 {
		add(IssueTooFewOptions, fmt.Sprintf("%d options", len(q.Options)))
	}

	switch n := q.CorrectOptionCount(); {
	case n == 0:
		add(IssueNoCorrectOption, "no option is marked correct")
	case n > 1:
		add(IssueMultipleCorrect, fmt.Sprintf("%d options are marked correct", n))
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, dup := seen[o.ID]; dup {
			add(IssueDuplicateOption, o.ID)
		}
		seen[o.ID] = struct{}{}
	}

	return issues
}
