package jobs

import (
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rs/zerolog/log"
)

// Sweeper drops verification codes nobody came back for.
type Sweeper interface {
	Sweep(grace time.Duration) int
}

// SweepVerificationCodes returns a job that sweeps store with the given grace.
func SweepVerificationCodes(store Sweeper, grace time.Duration) func() {
	logger := log.With().Str("job", "sweep-verification-codes").Logger()
	return func() {
		removed := store.Sweep(grace)
		auth.RecordSwept(removed)
		if removed > 0 {
			logger.Info().Int("removed", removed).Msg("Removed abandoned verification codes")
		}
	}
}

// RegisterSweep schedules the verification code janitor on a cron schedule.
func RegisterSweep(s *Scheduler, spec string, store Sweeper, grace time.Duration) (int, error) {
	return s.AddFunc(spec, SweepVerificationCodes(store, grace))
}
