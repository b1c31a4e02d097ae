package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// FeedbackNotifier tells the admin that a visitor left feedback.
type FeedbackNotifier interface {
	NotifyFeedback(ctx context.Context, feedback models.Feedback) error
}

// PhoneLookup returns the number notifications go to.
type PhoneLookup func(ctx context.Context) (string, error)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts new feedback to the admin phone through Twilio.
type SMSNotifier struct {
	api    messageCreator
	from   string
	phone  PhoneLookup
	logger zerolog.Logger
}

func NewSMSNotifier(cfg config.SMSConfig, phone PhoneLookup) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return newSMSNotifier(client.Api, cfg.TwilioFrom, phone)
}

func newSMSNotifier(api messageCreator, from string, phone PhoneLookup) *SMSNotifier {
	return &SMSNotifier{
		api:    api,
		from:   from,
		phone:  phone,
		logger: log.With().Str("notifier", "sms").Logger(),
	}
}

func (n *SMSNotifier) NotifyFeedback(ctx context.Context, feedback models.Feedback) error {
	to, err := n.phone(ctx)
	if err != nil {
		return fmt.Errorf("resolve admin phone: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(feedbackText(feedback))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.Sid != nil {
		n.logger.Info().Str("sid", *resp.Sid).Msg("Sent feedback notification")
	}
	return nil
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) NotifyFeedback(context.Context, models.Feedback) error { return nil }

func feedbackText(f models.Feedback) string {
	message := f.Message
	if r := []rune(message); len(r) > 140 {
		message = string(r[:137]) + "..."
	}
	return fmt.Sprintf("New feedback from %s <%s>: %s", f.Name, f.Email, message)
}
