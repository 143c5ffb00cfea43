package utils

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends account notification mail. With no SMTP host configured
// every send is a no-op, so local setups work without a mail server.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer(host string, port int, sender, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, sender: sender, password: password}
}

func (m *SMTPMailer) SendWelcome(to, username string) {
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account was created successfully.</p>", username)
	m.send(to, "Welcome", body)
}

func (m *SMTPMailer) SendPasswordChanged(to, username string) {
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your password was just changed. If this wasn't you, reset it immediately.</p>", username)
	m.send(to, "Your password was changed", body)
}

func (m *SMTPMailer) send(to, subject, body string) {
	if m.host == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.sender, m.password)
	if err := dialer.DialAndSend(msg); err != nil {
		slog.Error("failed to send mail", "to", to, "subject", subject, "err", err)
	}
}
