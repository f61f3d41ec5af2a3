package notify

import (
	"billkaro/statement-ledger/internal/models"
)

// Delivery is the outcome of one notification attempt. Sent is false only
// when no recipient was given or it was rejected.
type Delivery struct {
	Channel   string
	Recipient string
	Sent      bool
	Simulated bool
	MessageID string
	Err       error
}

// Request names the recipients of one processed statement. Empty fields
// skip that channel.
type Request struct {
	WhatsAppNumber string
	EmailAddress   string
	FileID         string
	WorkbookPath   string
	Summary        models.Summary
}

// Outcome reports both channels.
type Outcome struct {
	WhatsApp Delivery
	Email    Delivery
}

// Notifier fans a statement summary out to the configured channels.
type Notifier struct {
	whatsapp *WhatsAppNotifier
	email    *EmailNotifier
}

// NewNotifier combines the channel notifiers. Either may be nil.
func NewNotifier(whatsapp *WhatsAppNotifier, email *EmailNotifier) *Notifier {
	return &Notifier{whatsapp: whatsapp, email: email}
}

// Notify delivers req on every channel that has a recipient.
func (n *Notifier) Notify(req Request) Outcome {
	var out Outcome
	if n.whatsapp != nil && req.WhatsAppNumber != "" {
		out.WhatsApp = n.whatsapp.Notify(req.WhatsAppNumber, req.Summary, req.FileID)
	}
	if n.email != nil && req.EmailAddress != "" {
		out.Email = n.email.Notify(req.EmailAddress, req.Summary, req.FileID, req.WorkbookPath)
	}
	return out
}
