// Package mail sends the plain-text messages the API needs — currently only
// the password-recovery mail. Delivery guarantees are out of scope; a send
// either hands the message to the SMTP server or returns an error.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers mail through a single SMTP server with PLAIN auth.
// It satisfies the service layer's Mailer interface.
type SMTPMailer struct {
	addr string // host:port
	host string
	from string
	auth smtp.Auth
}

// NewSMTPMailer constructs a mailer for the given server.
// Returns an error when host or from is missing, so a misconfigured mailer
// fails at startup rather than on the first recovery request.
func NewSMTPMailer(host, port, username, password, from string) (*SMTPMailer, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("mail.NewSMTPMailer: SMTP_HOST and SMTP_FROM are required")
	}
	if port == "" {
		port = "587"
	}

	m := &SMTPMailer{
		addr: host + ":" + port,
		host: host,
		from: from,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m, nil
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("mail.SMTPMailer.Send: %w", err)
	}
	return nil
}
