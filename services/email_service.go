package services

import (
	"time"

	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for sending reports.
type EmailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
	ToEmail   string
}

// EmailService delivers rendered reports to the fixed recipient over
// authenticated SMTP. Delivery failures are fatal for the run and
// propagate to the trigger; this service never retries.
type EmailService struct {
	cfg            EmailConfig
	serviceMetrics *shared.ServiceMetrics
}

// NewEmailService creates a sender with the given SMTP configuration.
func NewEmailService(cfg EmailConfig) *EmailService {
	return &EmailService{
		cfg:            cfg,
		serviceMetrics: shared.NewServiceMetrics("Email_Service"),
	}
}

// Send delivers one message with a plain text body and an optional
// HTML alternative.
func (s *EmailService) Send(subject, textBody, htmlBody string) error {
	start := time.Now()

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		s.serviceMetrics.RecordRequest(false, time.Since(start))
		serviceErr := shared.WrapError(err, shared.ErrorCategoryNotification, "EMAIL_SEND_FAILED", "Email_Service", "Send")
		serviceErr.LogError()
		return serviceErr
	}

	s.serviceMetrics.RecordRequest(true, time.Since(start))
	logrus.WithFields(logrus.Fields{
		"subject":   subject,
		"recipient": s.cfg.ToEmail,
	}).Info("Report email sent")
	return nil
}

// GetServiceMetrics returns the current service metrics
func (s *EmailService) GetServiceMetrics() *shared.ServiceMetrics {
	return s.serviceMetrics
}
