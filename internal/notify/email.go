package notify

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"billkaro/statement-ledger/internal/logging"
	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/parsererror"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	// ChannelEmail names the e-mail channel in logs and errors.
	ChannelEmail = "email"
	// DefaultFromAddress is the sender used when none is configured.
	DefaultFromAddress = "noreply@billkaro.com"
	// WorkbookContentType is the MIME type of the attached workbook.
	WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Attachment is a file sent along with an e-mail.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Email is one outbound message.
type Email struct {
	From        string
	To          string
	Subject     string
	PlainText   string
	HTML        string
	Attachments []Attachment
}

// EmailSender delivers one e-mail.
type EmailSender interface {
	SendEmail(msg Email) error
}

// SendGridSender implements EmailSender with the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
}

// NewSendGridSender creates a sender authenticated with apiKey.
func NewSendGridSender(apiKey string) *SendGridSender {
	return &SendGridSender{client: sendgrid.NewSendClient(apiKey)}
}

// SendEmail sends msg and treats any non-2xx status as a failure.
func (s *SendGridSender) SendEmail(msg Email) error {
	from := sgmail.NewEmail("BillKaro", msg.From)
	to := sgmail.NewEmail("", msg.To)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)
	for _, a := range msg.Attachments {
		att := sgmail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Content))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// EmailNotifier formats and sends the statement report e-mail.
type EmailNotifier struct {
	sender EmailSender
	from   string
	logger logging.Logger
}

// NewEmailNotifier creates a notifier. A nil sender simulates delivery.
func NewEmailNotifier(sender EmailSender, from string, logger logging.Logger) *EmailNotifier {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if from == "" {
		from = DefaultFromAddress
	}
	return &EmailNotifier{
		sender: sender,
		from:   from,
		logger: logger.WithField(logging.FieldChannel, ChannelEmail),
	}
}

// NewEmailNotifierFromConfig builds a SendGrid-backed notifier, or a
// simulating one without an API key.
func NewEmailNotifierFromConfig(apiKey, from string, logger logging.Logger) *EmailNotifier {
	if strings.TrimSpace(apiKey) == "" {
		return NewEmailNotifier(nil, from, logger)
	}
	return NewEmailNotifier(NewSendGridSender(apiKey), from, logger)
}

// Notify e-mails the summary to address, attaching the workbook at
// workbookPath when it is readable.
func (n *EmailNotifier) Notify(address string, s models.Summary, fileID, workbookPath string) Delivery {
	address = strings.TrimSpace(address)
	d := Delivery{Channel: ChannelEmail, Recipient: address}
	if address == "" {
		return d
	}
	if _, err := mail.ParseAddress(address); err != nil {
		d.Err = &parsererror.NotificationError{Channel: ChannelEmail, Recipient: address, Err: err}
		n.logger.WithError(d.Err).Warn("Rejected e-mail address")
		return d
	}

	plain, htmlBody := EmailBodies(s, fileID)
	msg := Email{
		From:      n.from,
		To:        address,
		Subject:   EmailSubject,
		PlainText: plain,
		HTML:      htmlBody,
	}
	if workbookPath != "" {
		content, err := os.ReadFile(workbookPath) // #nosec G304 -- path produced by the exporter
		if err != nil {
			n.logger.WithError(err).Warn("Workbook not attached", logging.Field{Key: logging.FieldFile, Value: workbookPath})
		} else {
			msg.Attachments = append(msg.Attachments, Attachment{
				Filename:    filepath.Base(workbookPath),
				ContentType: WorkbookContentType,
				Content:     content,
			})
		}
	}

	if n.sender == nil {
		n.logger.Info("Simulated e-mail delivery", logging.Field{Key: logging.FieldRecipient, Value: address})
		d.Sent, d.Simulated = true, true
		return d
	}

	if err := n.sender.SendEmail(msg); err != nil {
		d.Err = &parsererror.NotificationError{Channel: ChannelEmail, Recipient: address, Err: err}
		n.logger.WithError(d.Err).Warn("E-mail delivery failed, reporting simulated delivery")
		d.Sent, d.Simulated = true, true
		return d
	}

	n.logger.Info("Sent e-mail report", logging.Field{Key: logging.FieldRecipient, Value: address})
	d.Sent = true
	return d
}
