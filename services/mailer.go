package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rs/zerolog/log"
)

// Message is an outbound email.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers email. Implementations attempt each send once.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SenderCredentials resolves the mailbox login used by the SMTP driver.
type SenderCredentials func(ctx context.Context) (username, password string, err error)

// NewMailer builds the driver selected by cfg.Driver.
func NewMailer(cfg config.MailConfig, sender SenderCredentials) (Mailer, error) {
	switch cfg.Driver {
	case "", "smtp":
		return NewSMTPMailer(cfg, sender), nil
	case "resend":
		return NewResendMailer(cfg.ResendAPIKey, cfg.ResendFrom), nil
	case "log":
		return NewLogMailer(log.Logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

// VerificationMessage renders the email carrying a verification code.
func VerificationMessage(to, code, purpose string) Message {
	subject := "Admin Login Verification Code"
	intro := "Your verification code for admin login is"
	if purpose == "credential_update" {
		subject = "Admin Credentials Update Verification Code"
		intro = "Your verification code for updating the admin credentials is"
	}
	return Message{
		To:      []string{to},
		Subject: subject,
		Text:    fmt.Sprintf("%s: %s\n\nThis code will expire in 5 minutes.", intro, code),
		HTML: fmt.Sprintf(
			"<p>%s:</p><h2>%s</h2><p>This code will expire in 5 minutes.</p>",
			intro, code,
		),
	}
}
