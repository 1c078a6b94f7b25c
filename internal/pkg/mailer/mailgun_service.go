package mailer

import (
	"context"
	"fmt"

	"portfolio-be/internal/config"
	"portfolio-be/internal/pkg/logger"

	"github.com/mailgun/mailgun-go/v4"
)

type mailgunService struct {
	cfg    config.MailConfig
	logger logger.ILogger
}

func NewMailgunService(cfg config.MailConfig, log logger.ILogger) IEmailService {
	return &mailgunService{cfg: cfg, logger: log}
}

func (s *mailgunService) CheckConfig() error {
	return checkSettings(ProviderMailgun, [][2]string{
		{"MAILGUN_API_KEY", s.cfg.MailgunAPIKey},
		{"MAILGUN_DOMAIN", s.cfg.MailgunDomain},
		{"MAILGUN_TO_EMAIL", s.cfg.ToEmail},
	})
}

func (s *mailgunService) SendContactNotification(ctx context.Context, msg ContactMessage) (*Receipt, error) {
	if err := s.CheckConfig(); err != nil {
		return nil, err
	}

	html, err := RenderHTML(msg)
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	mg := mailgun.NewMailgun(s.cfg.MailgunDomain, s.cfg.MailgunAPIKey)
	if s.cfg.MailgunAPIBase != "" {
		mg.SetAPIBase(s.cfg.MailgunAPIBase)
	}

	from := fmt.Sprintf("%s <%s>", msg.Name, msg.Email)
	m := mg.NewMessage(from, subjectLine(msg), msg.Message, s.cfg.ToEmail)
	m.SetHtml(html)
	m.SetReplyTo(from)

	status, id, err := mg.Send(ctx, m)
	if err != nil {
		s.logger.Error("MAILER", "Mailgun delivery failed", map[string]interface{}{
			"contact_id": msg.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("MAILER", "Contact notification sent", map[string]interface{}{
		"provider":   ProviderMailgun,
		"contact_id": msg.ID,
		"message_id": id,
	})
	return &Receipt{Provider: ProviderMailgun, ID: id, Message: status}, nil
}
