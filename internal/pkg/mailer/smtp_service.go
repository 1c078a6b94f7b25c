package mailer

import (
	"context"
	"fmt"

	"portfolio-be/internal/config"
	"portfolio-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type smtpService struct {
	cfg     config.SMTPConfig
	toEmail string
	dialer  *gomail.Dialer
	logger  logger.ILogger
}

func NewSMTPService(cfg config.SMTPConfig, toEmail string, log logger.ILogger) IEmailService {
	return &smtpService{
		cfg:     cfg,
		toEmail: toEmail,
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		logger:  log,
	}
}

func (s *smtpService) CheckConfig() error {
	return checkSettings(ProviderSMTP, [][2]string{
		{"SMTP_HOST", s.cfg.Host},
		{"SMTP_EMAIL", s.cfg.Email},
		{"SMTP_PASSWORD", s.cfg.Password},
		{"MAILGUN_TO_EMAIL", s.toEmail},
	})
}

// BuildMessage composes the notification. The SMTP account is the sender;
// the visitor goes into Reply-To.
func (s *smtpService) BuildMessage(msg ContactMessage) (*gomail.Message, error) {
	html, err := RenderHTML(msg)
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email, s.cfg.SenderName)
	m.SetHeader("To", s.toEmail)
	m.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	m.SetHeader("Subject", subjectLine(msg))
	m.SetBody("text/plain", msg.Message)
	m.AddAlternative("text/html", html)
	return m, nil
}

func (s *smtpService) SendContactNotification(ctx context.Context, msg ContactMessage) (*Receipt, error) {
	if err := s.CheckConfig(); err != nil {
		return nil, err
	}

	m, err := s.BuildMessage(msg)
	if err != nil {
		return nil, err
	}

	// gomail has no context support; give up waiting when ctx ends.
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		s.logger.Error("MAILER", "SMTP delivery failed", map[string]interface{}{
			"contact_id": msg.ID,
			"host":       s.cfg.Host,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("MAILER", "Contact notification sent", map[string]interface{}{
		"provider":   ProviderSMTP,
		"contact_id": msg.ID,
	})
	return &Receipt{Provider: ProviderSMTP, Message: "Queued"}, nil
}
