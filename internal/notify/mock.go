package notify

// MockWhatsAppSender records messages for tests.
type MockWhatsAppSender struct {
	Err      error
	Messages []MockWhatsAppMessage
}

// MockWhatsAppMessage is one recorded message.
type MockWhatsAppMessage struct {
	From, To, Body string
}

// SendWhatsApp records the message.
func (m *MockWhatsAppSender) SendWhatsApp(from, to, body string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Messages = append(m.Messages, MockWhatsAppMessage{From: from, To: to, Body: body})
	return "SM-mock", nil
}

// MockEmailSender records e-mails for tests.
type MockEmailSender struct {
	Err    error
	Emails []Email
}

// SendEmail records msg.
func (m *MockEmailSender) SendEmail(msg Email) error {
	if m.Err != nil {
		return m.Err
	}
	m.Emails = append(m.Emails, msg)
	return nil
}
