package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionJanitor disposes quizzes that were abandoned by their players.
type SessionJanitor struct {
	store    SessionStore
	metrics  Metrics
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

// NewSessionJanitor creates a janitor that runs on a cron schedule.
func NewSessionJanitor(store SessionStore, metrics Metrics, ttl time.Duration, schedule string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		store:    store,
		metrics:  metrics,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the cleanup loop until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) {
	if j.ttl <= 0 {
		j.logger.Info("session janitor disabled")
		return
	}

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		j.Sweep()
	})
	if err != nil {
		j.logger.Error("failed to add cron job", zap.String("schedule", j.schedule), zap.Error(err))
		return
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("ttl", j.ttl))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
}

// Sweep disposes idle quizzes and returns how many were removed.
func (j *SessionJanitor) Sweep() int {
	chats := j.store.DisposeIdle(j.ttl)

	j.metrics.SessionsDisposed(len(chats))
	j.metrics.SetActiveSessions(j.store.Len())

	if len(chats) > 0 {
		j.logger.Info("idle quizzes disposed",
			zap.Int("count", len(chats)),
			zap.Int64s("chat_ids", chats))
	}

	return len(chats)
}
