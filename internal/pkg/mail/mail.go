package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// Config holds mail provider settings.
type Config struct {
	Enable bool   `yaml:"enable"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	From   string `yaml:"from"`
	To     string `yaml:"to"` // notification recipient
}

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender sends emails via SMTP.
type Sender struct {
	cfg Config
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// Enabled reports whether the sender is configured to dispatch mail.
func (s *Sender) Enabled() bool {
	return s.cfg.Enable && s.cfg.Host != "" && s.cfg.To != ""
}

// Send dispatches an email via net/smtp. A disabled sender is a no-op.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}

	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)
	return smtp.SendMail(addr, auth, from, msg.To, body.Bytes())
}

const contactNotifyTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h2 style="color:#333">New contact message</h2>
  <p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; wrote:</p>
  <div style="background:#f3f4f6;border-radius:8px;padding:12px 16px">
    <p style="font-size:14px;line-height:22px;color:#333">{{.Message}}</p>
  </div>
  <p style="color:#999;font-size:12px">Sent automatically by the portfolio contact form.</p>
</div>
</body>
</html>`

var contactTemplate = template.Must(template.New("contact").Parse(contactNotifyTpl))

// ContactNotification builds the owner notification for a contact submission.
func (s *Sender) ContactNotification(name, email, message string) (Message, error) {
	var html bytes.Buffer
	err := contactTemplate.Execute(&html, map[string]string{
		"Name":    name,
		"Email":   email,
		"Message": message,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{s.cfg.To},
		Subject: fmt.Sprintf("Portfolio contact from %s", name),
		HTML:    html.String(),
	}, nil
}
