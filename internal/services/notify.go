package services

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"formbot/internal/config"
	"formbot/internal/domain"
)

// Notifier tells an administrator about a stored submission
type Notifier interface {
	NotifySubmission(ctx context.Context, sub domain.FormSubmission) error
}

// sendMailFunc matches smtp.SendMail
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService sends admin notifications over SMTP
type EmailService struct {
	cfg      *config.EmailConfig
	appName  string
	sendMail sendMailFunc
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig, appName string) *EmailService {
	return &EmailService{
		cfg:      cfg,
		appName:  appName,
		sendMail: smtp.SendMail,
	}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// NotifySubmission emails the admin a summary of sub. When email is
// disabled the summary is only logged.
func (s *EmailService) NotifySubmission(_ context.Context, sub domain.FormSubmission) error {
	subject := fmt.Sprintf("[%s] New form submission from %s", s.appName, sub.Company)

	if !s.cfg.Enabled {
		log.Printf("[EMAIL] Would notify %q: %s (id=%s)", s.cfg.AdminEmail, subject, sub.ID)
		return nil
	}

	body := fmt.Sprintf(`New form submission

Company: %s
Name: %s
Email: %s
Phone: %s
Submitted: %s

Submission ID: %s`, sub.Company, sub.Name, sub.Email, sub.Phone,
		sub.CreatedAt.Format("January 2, 2006 at 3:04 PM MST"), sub.ID)

	return s.SendEmail(s.cfg.AdminEmail, subject, body)
}

// SendEmail sends a plain text email
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n"

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := s.sendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
