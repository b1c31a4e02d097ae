package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// SMTPMailer sends through an SMTP relay, authenticating as the admin mailbox
// unless SMTP_USERNAME and SMTP_PASSWORD are set.
type SMTPMailer struct {
	cfg    config.MailConfig
	sender SenderCredentials
	logger zerolog.Logger
}

func NewSMTPMailer(cfg config.MailConfig, sender SenderCredentials) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		sender: sender,
		logger: log.With().Str("mailer", "smtp").Logger(),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("at least one recipient is required")
	}

	username, password, err := m.credentials(ctx)
	if err != nil {
		return err
	}

	message := mail.NewMsg()
	if err := message.From(username); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := message.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		message.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(m.cfg.SMTPTimeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("send via %s: %w", m.cfg.SMTPHost, err)
	}
	m.logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Sent email")
	return nil
}

func (m *SMTPMailer) credentials(ctx context.Context) (string, string, error) {
	if m.cfg.SMTPUsername != "" && m.cfg.SMTPPassword != "" {
		return m.cfg.SMTPUsername, m.cfg.SMTPPassword, nil
	}
	if m.sender == nil {
		return "", "", errors.New("no smtp credentials configured")
	}
	username, password, err := m.sender(ctx)
	if err != nil {
		return "", "", fmt.Errorf("resolve smtp credentials: %w", err)
	}
	return username, password, nil
}
