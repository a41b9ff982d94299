package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/freshmarket/commerce-api/config"
)

type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers outbound mail. The auth flow treats delivery as a blocking
// call and handles (not retries) its failure.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// NewMailer selects the delivery backend from configuration. The log driver
// is the default so local environments never need an SMTP server.
func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.Driver == "smtp" {
		return &SMTPMailer{cfg: cfg}
	}
	return &LogMailer{}
}

// LogMailer records the message instead of delivering it.
type LogMailer struct{}

func (m *LogMailer) Send(_ context.Context, msg MailMessage) error {
	logrus.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("mail delivery skipped (log driver)")
	return nil
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func (m *SMTPMailer) Send(_ context.Context, msg MailMessage) error {
	var body strings.Builder
	body.WriteString("From: " + m.cfg.From + "\r\n")
	body.WriteString("To: " + msg.To + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n")
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(body.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
