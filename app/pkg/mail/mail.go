// Package mail is the notification channel: it renders a template and
// best-effort delivers the result. Delivery semantics beyond
// success/failure are the mail infrastructure's concern.
package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var ErrMail = errs.Class("mail")

type Config struct {
	Host     string `help:"smtp host" default:"localhost"`
	Port     int    `help:"smtp port" default:"587"`
	Username string `help:"smtp user" default:""`
	Password string `help:"smtp password" default:""`
	From     string `help:"sender address" default:"no-reply@taskhub.local"`
	Enabled  bool   `help:"set false to log instead of send" devDefault:"false" default:"true"`
}

type Message struct {
	To      string
	Subject string
	Body    string // HTML
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// NewSender returns an SMTP sender, or a logging no-op sender when
// delivery is disabled (local development).
func NewSender(conf *Config, log *zap.Logger) Sender {
	if !conf.Enabled {
		return &logSender{log: log}
	}
	return &smtpSender{config: conf, log: log}
}

type smtpSender struct {
	config *Config
	log    *zap.Logger
}

func (s *smtpSender) Send(_ context.Context, msg *Message) error {
	if msg.To == "" {
		return ErrMail.New("missing recipient")
	}
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	data := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.From, msg.To, msg.Subject, msg.Body))
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	if err := smtp.SendMail(addr, auth, s.config.From, []string{msg.To}, data); err != nil {
		s.log.Error("send mail failed", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		return ErrMail.Wrap(err)
	}
	s.log.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type logSender struct {
	log *zap.Logger
}

func (s *logSender) Send(_ context.Context, msg *Message) error {
	s.log.Info("mail suppressed (delivery disabled)",
		zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
