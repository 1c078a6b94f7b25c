// FILE: internal/service/contact_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-be/internal/dto"
	"portfolio-be/internal/pkg/logger"
	"portfolio-be/internal/pkg/mailer"
	"portfolio-be/internal/pkg/serverutils"
	"portfolio-be/internal/repository/contract"
	"portfolio-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

var (
	ErrServiceNotConfigured = errors.New("email service not configured")
	ErrMissingFields        = errors.New("all fields are required")
	ErrTooManyRequests      = errors.New("too many requests")
)

type IContactService interface {
	// CheckReady fails with ErrServiceNotConfigured when the mailer lacks
	// credentials.
	CheckReady() error
	Send(ctx context.Context, req *dto.ContactRequest, clientIP string) (*mailer.Receipt, error)
}

type ThrottleSettings struct {
	Limit  int
	Window time.Duration
}

type contactService struct {
	mailer    mailer.IEmailService
	throttle  contract.ThrottleRepository
	settings  ThrottleSettings
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
	now       func() time.Time
}

// NewContactService wires the delivery path. throttle and publisher may be
// nil, which disables rate limiting and event publishing respectively.
func NewContactService(
	emailService mailer.IEmailService,
	throttle contract.ThrottleRepository,
	settings ThrottleSettings,
	publisher message.Publisher,
	topic string,
	log logger.ILogger,
) IContactService {
	return &contactService{
		mailer:    emailService,
		throttle:  throttle,
		settings:  settings,
		publisher: publisher,
		topic:     topic,
		logger:    log,
		now:       time.Now,
	}
}

func (s *contactService) CheckReady() error {
	err := s.mailer.CheckConfig()
	if err == nil {
		return nil
	}

	details := map[string]interface{}{"error": err.Error()}
	var cfgErr *mailer.ConfigError
	if errors.As(err, &cfgErr) {
		details = cfgErr.Presence()
		details["provider"] = cfgErr.Provider
	}
	s.logger.Error("CONTACT", "Missing mail configuration", details)

	return fmt.Errorf("%w: %v", ErrServiceNotConfigured, err)
}

func (s *contactService) Send(ctx context.Context, req *dto.ContactRequest, clientIP string) (*mailer.Receipt, error) {
	if err := s.CheckReady(); err != nil {
		return nil, err
	}

	normalize(req)
	if err := serverutils.ValidateRequest(req); err != nil || strings.TrimSpace(req.Message) == "" {
		s.logger.Warn("CONTACT", "Rejected incomplete submission", map[string]interface{}{
			"contact_id": req.Id,
		})
		return nil, ErrMissingFields
	}

	if err := s.allow(ctx, clientIP); err != nil {
		return nil, err
	}

	msg := mailer.ContactMessage{
		ID:      req.Id,
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	receipt, err := s.mailer.SendContactNotification(ctx, msg)
	if err != nil {
		s.logger.Error("CONTACT", "Failed to send contact notification", map[string]interface{}{
			"contact_id": req.Id,
			"error":      err.Error(),
		})
		s.publish(events.ContactFailed, dto.ContactEventMessage{
			ContactId: req.Id,
			Name:      req.Name,
			Subject:   req.Subject,
			Error:     err.Error(),
		})
		return nil, err
	}

	s.logger.Info("CONTACT", "Contact message delivered", map[string]interface{}{
		"contact_id": req.Id,
		"provider":   receipt.Provider,
	})
	s.publish(events.ContactSubmitted, dto.ContactEventMessage{
		ContactId: req.Id,
		Name:      req.Name,
		Subject:   req.Subject,
		Provider:  receipt.Provider,
	})
	return receipt, nil
}

func (s *contactService) allow(ctx context.Context, clientIP string) error {
	if s.throttle == nil || s.settings.Limit <= 0 {
		return nil
	}

	n, err := s.throttle.Hit(ctx, "contact:"+clientIP, s.settings.Window)
	if err != nil {
		// fail open, a broken throttle store must not block real messages
		s.logger.Warn("THROTTLE", "Throttle store unavailable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if n > s.settings.Limit {
		s.logger.Warn("THROTTLE", "Contact submission throttled", map[string]interface{}{
			"client_ip": clientIP,
			"count":     n,
			"limit":     s.settings.Limit,
		})
		return ErrTooManyRequests
	}
	return nil
}

func (s *contactService) publish(eventType string, payload dto.ContactEventMessage) {
	if s.publisher == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}

	evt := events.New(eventType, data, s.now())
	body, err := json.Marshal(evt.Payload())
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("event_type", eventType)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Error("EVENTS", "Failed to publish contact event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

// normalize trims the single-line fields; the message body is kept verbatim.
func normalize(req *dto.ContactRequest) {
	req.Id = strings.TrimSpace(req.Id)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
}
