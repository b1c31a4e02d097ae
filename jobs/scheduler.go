package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler is a cron-like job scheduler.
type Scheduler struct {
	*cron.Cron
	logger zerolog.Logger
}

// cronLogger adapts zerolog to the cron logger interface.
type cronLogger struct {
	logger zerolog.Logger
}

// Info logs routine messages about cron's operation.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Error logs an error condition.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// NewScheduler returns a scheduler that logs through the global logger.
func NewScheduler() *Scheduler {
	logger := log.With().Str("component", "cron").Logger()
	cl := cronLogger{logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Shutdown stops the scheduler and waits up to 30 seconds for running jobs.
func (s *Scheduler) Shutdown() {
	ctx, cancel := context.WithTimeout(s.Cron.Stop(), 30*time.Second)
	defer cancel()
	<-ctx.Done()
}

// AddFunc adds a job to the Scheduler.
func (s *Scheduler) AddFunc(spec string, fn func()) (int, error) {
	id, err := s.Cron.AddFunc(spec, fn)
	return int(id), err
}

// Remove removes a job from the Scheduler.
func (s *Scheduler) Remove(id int) {
	s.Cron.Remove(cron.EntryID(id))
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	s.logger.Info().Int("jobs", len(s.Entries())).Msg("Scheduler started")
	<-ctx.Done()
	s.Shutdown()
	s.logger.Info().Msg("Scheduler stopped")
	return nil
}
