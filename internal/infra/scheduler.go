package infra

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"finchbot/internal/session"
)

// SessionSweeper periodically removes abandoned risk questionnaire sessions.
// A swept session makes later answer callbacks a benign no-op.
type SessionSweeper struct {
	cron     *cron.Cron
	sessions *session.Store
	maxIdle  time.Duration
	log      zerolog.Logger
}

// NewSessionSweeper creates a sweeper for sessions idle longer than maxIdle.
func NewSessionSweeper(sessions *session.Store, maxIdle time.Duration, log zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		cron:     cron.New(),
		sessions: sessions,
		maxIdle:  maxIdle,
		log:      log.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start schedules the sweep every 5 minutes.
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		removed := s.sessions.SweepIdle(s.maxIdle)
		if removed > 0 {
			s.log.Info().
				Int("removed", removed).
				Dur("max_idle", s.maxIdle).
				Msg("Swept abandoned risk sessions")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Msg("Session sweeper started (every 5 minutes)")
	return nil
}

// Stop stops the sweeper.
func (s *SessionSweeper) Stop() {
	s.cron.Stop()
}
