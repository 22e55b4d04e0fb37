package service

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"portfolio_server/internal/config"
	"portfolio_server/internal/domain"
	"portfolio_server/pkg/logger"
)

// EmailService delivers contact-form notifications. Sends are best effort:
// a submission is stored regardless of whether SMTP cooperates.
type EmailService interface {
	SendContactNotification(submission *domain.ContactSubmission) error
	SendAutoReply(submission *domain.ContactSubmission) error
	Configured() bool
}

type emailService struct {
	cfg config.SMTPConfig
	log logger.Logger
}

func NewEmailService(cfg config.SMTPConfig, log logger.Logger) EmailService {
	return &emailService{cfg: cfg, log: log}
}

func (s *emailService) Configured() bool {
	return s.cfg.Host != "" && s.cfg.User != ""
}

// SendContactNotification emails the site owner about a new submission.
func (s *emailService) SendContactNotification(sub *domain.ContactSubmission) error {
	if !s.Configured() {
		s.log.Warn("SMTP not configured, skipping admin notification")
		return nil
	}

	name := html.EscapeString(sub.FirstName + " " + sub.LastName)
	body := fmt.Sprintf(`<h2>New contact form submission</h2>
<p><strong>From:</strong> %s &lt;%s&gt;</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
		name,
		html.EscapeString(sub.Email),
		html.EscapeString(sub.Subject),
		html.EscapeString(sub.Message),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.User)
	m.SetHeader("To", s.cfg.AdminEmail)
	m.SetHeader("Reply-To", sub.Email)
	m.SetHeader("Subject", "Portfolio contact: "+sub.Subject)
	m.SetBody("text/html", body)

	return s.dial(m)
}

// SendAutoReply confirms receipt to the person who wrote in.
func (s *emailService) SendAutoReply(sub *domain.ContactSubmission) error {
	if !s.Configured() {
		return nil
	}

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Thanks for reaching out! I received your message about "%s" and will get back to you as soon as I can.</p>
<p>Best regards</p>`,
		html.EscapeString(sub.FirstName),
		html.EscapeString(sub.Subject),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.User)
	m.SetHeader("To", sub.Email)
	m.SetHeader("Subject", "Thanks for your message")
	m.SetBody("text/html", body)

	return s.dial(m)
}

func (s *emailService) dial(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		s.log.Error("Failed to send email", "error", err)
		return err
	}
	return nil
}
