package smtp

import (
	"bytes"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/go-accounts-api/internal/config"
)

// Mailer sends templated emails. Callers name a template and pass its
// variables; delivery failures are the caller's to log — nothing here retries.
type Mailer interface {
	Send(to, subject, templateName string, vars map[string]string) error
}

// Template names known to the mailer.
const (
	TemplateActivation = "activation-email"
)

var templates = template.Must(template.New(TemplateActivation).Parse(
	"Hi {{.name}},\r\n\r\n" +
		"Your activation code is {{.code}}.\r\n" +
		"It expires in 10 minutes. If you did not request this, ignore this email.\r\n",
))

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Send(to, subject, templateName string, vars map[string]string) error {
	tmpl := templates.Lookup(templateName)
	if tmpl == nil {
		return fmt.Errorf("unknown email template %q", templateName)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, vars); err != nil {
		return fmt.Errorf("render template %q: %w", templateName, err)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body.String())
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
