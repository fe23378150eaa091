package services

import (
	"fmt"

	"github.com/rpupo63/construction-site-backend/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the part of the Twilio API client used to send texts.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSSender texts short lead alerts through Twilio.
type SMSSender struct {
	api  MessageCreator
	from string
	to   []string
}

func NewSMSSender(api MessageCreator, from string, to []string) *SMSSender {
	return &SMSSender{api: api, from: from, to: to}
}

// NewSMSSenderFromConfig returns nil when TWILIO_ACCOUNT_SID is unset; SMS
// alerts are optional.
func NewSMSSenderFromConfig(cfg map[string]string) *SMSSender {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	if sid == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: config.GetString(cfg, "TWILIO_AUTH_TOKEN", ""),
	})
	return NewSMSSender(client.Api, config.GetString(cfg, "TWILIO_FROM_NUMBER", ""), config.GetList(cfg, "LEAD_ALERT_PHONES"))
}

// SendSMS texts body to every configured number, stopping at the first failure.
func (s *SMSSender) SendSMS(body string) error {
	for _, to := range s.to {
		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(s.from)
		params.SetBody(body)

		msg, err := s.api.CreateMessage(params)
		if err != nil {
			return fmt.Errorf("failed to send SMS to %s: %w", to, err)
		}
		if msg != nil && msg.Sid != nil {
			log.Info().Str("sid", *msg.Sid).Msg("Lead alert SMS sent")
		}
	}
	return nil
}
