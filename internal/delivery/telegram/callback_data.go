package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionGame  = "game"
	actionGames = "games"
	actionQuiz  = "quiz"
	actionRetry = "retry"
	actionNext  = "next"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildGameCallback builds callback data for starting a game.
func buildGameCallback(gameID string) string {
	return callbackData{
		Action: actionGame,
		Params: []string{gameID},
	}.encode()
}

func buildGamesCallback() string {
	return actionGames
}

// buildQuizAnswerCallback builds callback data for answering a question.
func buildQuizAnswerCallback(questionIndex int, optionID string) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{strconv.Itoa(questionIndex), optionID},
	}.encode()
}

func buildRetryCallback() string {
	return actionRetry
}

func buildNextCallback() string {
	return actionNext
}

// parseQuizAnswer extracts the question index and option id of an answer.
func parseQuizAnswer(cd callbackData) (int, string, error) {
	if len(cd.Params) != 2 || cd.Params[1] == "" {
		return 0, "", fmt.Errorf("invalid quiz callback %q", cd.Raw)
	}

	idx, err := strconv.Atoi(cd.Params[0])
	if err != nil || idx < 0 {
		return 0, "", fmt.Errorf("invalid question index in %q", cd.Raw)
	}

	return idx, cd.Params[1], nil
}
