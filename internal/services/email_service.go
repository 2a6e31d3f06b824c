package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationEmail(email, token string) error
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewEmailService builds the SMTP-backed mailer. baseURL is the externally
// visible address the confirmation link points at.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, baseURL string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		baseURL: baseURL,
	}
}

func (s *emailService) SendVerificationEmail(email, token string) error {
	confirmationURL := fmt.Sprintf("%s/register/confirm?token=%s", s.baseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Confirm your registration")

	body := fmt.Sprintf(`
		<p>Thank you for registering. Please click the link below to activate your account:</p>
		<p><a href="%s">%s</a></p>
		<p>This link will expire in 15 minutes.</p>
	`, confirmationURL, confirmationURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
