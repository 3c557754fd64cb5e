package mailer

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/Plauto679/taiico-crm/internal/config"
	"github.com/Plauto679/taiico-crm/internal/models"
)

// Message is one outbound notification. Attachments are filesystem paths.
type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []string
}

// Mailer is the opaque outbound transport. The notify service only depends
// on this interface.
type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials: %w", models.ErrConfiguration)
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("smtp port %q: %w", cfg.Port, models.ErrConfiguration)
	}
	return &SMTPMailer{dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password)}, nil
}

func (s *SMTPMailer) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.dialer.Username)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)
	for _, path := range msg.Attachments {
		m.Attach(path)
	}
	return s.dialer.DialAndSend(m)
}
