package notify

import (
	"fmt"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const (
	// ChannelWhatsApp names the WhatsApp channel in logs and errors.
	ChannelWhatsApp = "whatsapp"
	// DefaultCountryCode is prefixed to numbers given without one.
	DefaultCountryCode = "+91"
	// DisabledSender turns WhatsApp delivery into a simulation.
	DisabledSender = "DISABLED"
)

// WhatsAppSender sends one WhatsApp message and returns its provider id.
type WhatsAppSender interface {
	SendWhatsApp(from, to, body string) (string, error)
}

// TwilioConfig holds the Twilio credentials.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Enabled reports whether real delivery is configured.
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != "" && c.FromNumber != DisabledSender
}

// TwilioSender implements WhatsAppSender with the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
}

// NewTwilioSender creates a sender for cfg.
func NewTwilioSender(cfg TwilioConfig) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
	}
}

// SendWhatsApp posts the message through the Twilio Messages API.
func (s *TwilioSender) SendWhatsApp(from, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// WhatsAppNotifier formats and sends statement summaries over WhatsApp.
type WhatsAppNotifier struct {
	sender      WhatsAppSender
	from        string
	countryCode string
	logger      logging.Logger
}

// NewWhatsAppNotifier creates a notifier. A nil sender or an empty from
// number makes every delivery simulated.
func NewWhatsAppNotifier(sender WhatsAppSender, from, countryCode string, logger logging.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if from != "" && !strings.HasPrefix(from, "whatsapp:") {
		from = "whatsapp:" + from
	}
	return &WhatsAppNotifier{
		sender:      sender,
		from:        from,
		countryCode: countryCode,
		logger:      logger.WithField(logging.FieldChannel, ChannelWhatsApp),
	}
}

// NewWhatsAppNotifierFromConfig builds a Twilio-backed notifier, or a
// simulating one when cfg is not enabled.
func NewWhatsAppNotifierFromConfig(cfg TwilioConfig, countryCode string, logger logging.Logger) *WhatsAppNotifier {
	if !cfg.Enabled() {
		return NewWhatsAppNotifier(nil, "", countryCode, logger)
	}
	return NewWhatsAppNotifier(NewTwilioSender(cfg), cfg.FromNumber, countryCode, logger)
}

// Notify sends the summary to number.
func (n *WhatsAppNotifier) Notify(number string, s models.Summary, fileID string) Delivery {
	to := FormatWhatsAppNumber(number, n.countryCode)
	d := Delivery{Channel: ChannelWhatsApp, Recipient: to}
	if to == "" {
		return d
	}
	body := WhatsAppBody(s, fileID)

	if n.sender == nil || n.from == "" {
		n.logger.Info("Simulated WhatsApp delivery", logging.Field{Key: logging.FieldRecipient, Value: to})
		d.Sent, d.Simulated = true, true
		return d
	}

	id, err := n.sender.SendWhatsApp(n.from, to, body)
	if err != nil {
		d.Err = &parsererror.NotificationError{Channel: ChannelWhatsApp, Recipient: to, Err: err}
		n.logger.WithError(d.Err).Warn("WhatsApp delivery failed, reporting simulated delivery")
		d.Sent, d.Simulated = true, true
		return d
	}

	n.logger.Info("Sent WhatsApp message",
		logging.Field{Key: logging.FieldRecipient, Value: to},
		logging.Field{Key: "message_id", Value: id})
	d.Sent, d.MessageID = true, id
	return d
}
