package tasks

import (
	"context"
	"time"

	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/repository"
)

// SessionCleanup handles periodic cleaning of expired sessions
type SessionCleanup struct {
	sessions repository.SessionRepository
	logger   *logging.Logger
	stop     chan struct{}
}

// NewSessionCleanup creates a new session cleanup task
func NewSessionCleanup(sessions repository.SessionRepository, logger *logging.Logger) *SessionCleanup {
	return &SessionCleanup{
		sessions: sessions,
		logger:   logger,
		stop:     make(chan struct{}),
	}
}

// Start begins the session cleanup task in the background
func (sc *SessionCleanup) Start() {
	go sc.runPeriodically()
}

// Stop ends the background task.
func (sc *SessionCleanup) Stop() {
	close(sc.stop)
}

// runPeriodically runs the cleanup task at regular intervals
func (sc *SessionCleanup) runPeriodically() {
	// Run immediately on startup
	sc.cleanup()

	// Then run every 12 hours
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sc.cleanup()
		case <-sc.stop:
			return
		}
	}
}

// cleanup performs the actual session cleanup
func (sc *SessionCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := sc.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		sc.logger.Error("Session cleanup failed: %v", err)
		return
	}
	sc.logger.Info("Deleted %d expired sessions", deleted)
}
