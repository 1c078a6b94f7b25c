// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"context"
	"fmt"
	"strings"

	"portfolio-be/internal/config"
	"portfolio-be/internal/pkg/logger"
)

const (
	ProviderMailgun = "mailgun"
	ProviderSMTP    = "smtp"

	SubjectPrefix = "Portfolio Contact: "
)

// ContactMessage is what a visitor submitted through the contact form.
type ContactMessage struct {
	ID      string
	Name    string
	Email   string
	Subject string
	Message string
}

// Receipt is the provider's acknowledgement, passed back to the caller as-is.
type Receipt struct {
	Provider string `json:"provider"`
	ID       string `json:"id,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ConfigError lists the settings a provider needs but did not get. It names
// settings only, never their values.
type ConfigError struct {
	Provider string
	Required []string
	Missing  []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s mailer not configured: missing %s", e.Provider, strings.Join(e.Missing, ", "))
}

// Presence reports, per required setting, whether it was provided.
func (e *ConfigError) Presence() map[string]interface{} {
	out := make(map[string]interface{}, len(e.Required))
	for _, name := range e.Required {
		out["has_"+strings.ToLower(name)] = true
	}
	for _, name := range e.Missing {
		out["has_"+strings.ToLower(name)] = false
	}
	return out
}

type IEmailService interface {
	// CheckConfig returns a *ConfigError when credentials are incomplete.
	CheckConfig() error
	SendContactNotification(ctx context.Context, msg ContactMessage) (*Receipt, error)
}

// NewEmailService builds the provider selected in cfg.Mail.Provider.
func NewEmailService(cfg *config.Config, log logger.ILogger) (IEmailService, error) {
	switch strings.ToLower(cfg.Mail.Provider) {
	case ProviderMailgun, "":
		return NewMailgunService(cfg.Mail, log), nil
	case ProviderSMTP:
		return NewSMTPService(cfg.SMTP, cfg.Mail.ToEmail, log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Mail.Provider)
	}
}

// checkSettings returns a *ConfigError naming every empty setting, or nil.
func checkSettings(provider string, settings [][2]string) error {
	err := &ConfigError{Provider: provider}
	for _, s := range settings {
		err.Required = append(err.Required, s[0])
		if strings.TrimSpace(s[1]) == "" {
			err.Missing = append(err.Missing, s[0])
		}
	}
	if len(err.Missing) == 0 {
		return nil
	}
	return err
}

func subjectLine(msg ContactMessage) string {
	return SubjectPrefix + msg.Subject
}
