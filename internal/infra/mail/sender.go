package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

var alertTemplate = template.Must(template.New("lead_alert").Parse(
	`New lead in the funnel.

Email: {{.LeadEmail}}
Stage: {{.Stage}}
Time:  {{.Time}}

Full record is in the leads table / funnel dashboard.
`))

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

func NewEmailSender(host string, port int, user, password, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
	}
}

// SendLeadAlert tells the funnel owner a lead just registered. Best-effort:
// the caller runs it async and only logs failures.
func (s *EmailSender) SendLeadAlert(leadEmail, stage string) error {
	data := LeadAlertData{
		LeadEmail: leadEmail,
		Stage:     stage,
		Time:      time.Now().UTC().Format(time.RFC3339),
	}

	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", leadEmail))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
