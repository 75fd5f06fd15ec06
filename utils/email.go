package utils

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// AdminMailer delivers operator notifications to a single fixed mailbox
// over SMTP. It satisfies the notification channel contract used by the
// reconciliation pipeline.
type AdminMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// NewAdminMailer builds a mailer from SMTP settings. Port falls back to
// 587 when unset or unparsable.
func NewAdminMailer(host, port, user, pass, from, to string) *AdminMailer {
	p, err := strconv.Atoi(port)
	if err != nil || p == 0 {
		p = 587
	}
	return &AdminMailer{Host: host, Port: p, User: user, Pass: pass, From: from, To: to}
}

// Send dispatches a plain-text notification and returns a generated
// message id. SMTP assigns no usable identifier, so one is minted here
// for response payloads and log correlation.
func (m *AdminMailer) Send(ctx context.Context, text string) (string, error) {
	if m.Host == "" || m.To == "" {
		return "", ConfigurationError("Notification channel is not configured", nil)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", "New paid order")
	msg.SetBody("text/plain", text)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	if err := d.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send notification email: %v", err)
	}

	return uuid.New().String(), nil
}
