package quiz

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultFeedbackDelay    = time.Second
	DefaultCelebrationRatio = 0.8
)

// CompletionPolicy controls whether OnSessionComplete fires again
// when a retried run finishes.
type CompletionPolicy string

const (
	NotifyOnce     CompletionPolicy = "once"  // only the first completion of a session
	NotifyEveryRun CompletionPolicy = "every" // every completion, retries included
)

// ParseCompletionPolicy parses a policy name from configuration.
func ParseCompletionPolicy(s string) (CompletionPolicy, error) {
	switch CompletionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NotifyOnce:
		return NotifyOnce, nil
	case NotifyEveryRun:
		return NotifyEveryRun, nil
	default:
		return "", fmt.Errorf("unknown completion policy: %s", s)
	}
}

// Config holds the parameters of a single session.
type Config struct {
	FeedbackDelay    time.Duration    // how long the feedback state is shown before advancing
	RewardPerCorrect int              // coins passed to OnCorrectAnswer
	CelebrationRatio float64          // share of the max score that triggers a celebration
	CompletionPolicy CompletionPolicy // whether completion is re-signaled after a retry
	Scheduler        Scheduler        // defaults to SystemScheduler
	Clock            func() time.Time // defaults to time.Now
}

func (c Config) withDefaults() Config {
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = DefaultFeedbackDelay
	}
	if c.CelebrationRatio <= 0 || c.CelebrationRatio > 1 {
		c.CelebrationRatio = DefaultCelebrationRatio
	}
	if c.CompletionPolicy == "" {
		c.CompletionPolicy = NotifyOnce
	}
	if c.Scheduler == nil {
		c.Scheduler = SystemScheduler
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}
