package smtp

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/go-notes-api/internal/config"
	"github.com/go-notes-api/internal/infrastructure/ses"
)

// mailer is the development fallback for ses.Mailer, pointed at a local
// SMTP catcher. net/smtp cannot honour ctx cancellation mid-dial; the
// caller bounds the whole send with a timeout instead.
type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) ses.Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.EmailFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendEmail(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
