package mail

import (
	gomail "gopkg.in/gomail.v2"

	"github.com/mslima/blog-core-go/internal/config"
)

// Mailer delivers transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through the configured SMTP relay using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Smtp, from string) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{dialer: d, from: from}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Noop discards mail; used when no SMTP host is configured.
type Noop struct{}

func (Noop) Send(to, subject, body string) error { return nil }

// FromConfig picks the SMTP mailer when a host is configured, Noop otherwise.
func FromConfig(cfg *config.Config) Mailer {
	if cfg.Smtp.Host == "" {
		return Noop{}
	}
	return NewSMTPMailer(cfg.Smtp, cfg.MailFrom)
}
