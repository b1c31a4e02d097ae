package services

import (
	"context"

	"github.com/rs/zerolog"
)

// LogMailer writes messages to the log instead of sending them. For local development.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("mailer", "log").Logger()}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Text).
		Msg("Email not sent, log driver active")
	return nil
}
