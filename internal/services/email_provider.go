package services

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Mathvic456/real-estate-management/internal/config"
)

// EmailProvider sends a single message to a resident
type EmailProvider interface {
	Send(ctx context.Context, message *EmailMessage) (*SendResult, error)
	GetName() string
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// SendResult represents the result of a send operation
type SendResult struct {
	ProviderID   string
	ProviderName string
	Success      bool
	Error        error
	ProviderData map[string]interface{}
}

// NewEmailProvider picks a provider from configuration: SendGrid when an API
// key is set, SMTP when a host is set, nil otherwise (notifications are then
// recorded locally without any delivery attempt).
func NewEmailProvider(cfg config.EmailConfig) EmailProvider {
	if cfg.SendGridAPIKey != "" {
		return NewSendGridProvider(cfg)
	}
	if cfg.SMTPHost != "" {
		return NewSMTPProvider(cfg)
	}
	return nil
}

// SendGridProvider implements email sending via SendGrid
type SendGridProvider struct {
	from     string
	fromName string
	client   *sendgrid.Client
}

// NewSendGridProvider creates a new SendGrid email provider
func NewSendGridProvider(cfg config.EmailConfig) *SendGridProvider {
	return &SendGridProvider{
		from:     cfg.From,
		fromName: cfg.FromName,
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
	}
}

// Send sends an email via SendGrid
func (p *SendGridProvider) Send(ctx context.Context, message *EmailMessage) (*SendResult, error) {
	from := mail.NewEmail(p.fromName, p.from)
	to := mail.NewEmail(message.ToName, message.To)
	m := mail.NewSingleEmail(from, message.Subject, to, message.Body, "")

	// Disable click tracking for transactional emails
	// This prevents SendGrid from rewriting URLs (which causes SSL issues with tracking domain)
	trackingSettings := mail.NewTrackingSettings()
	clickTracking := mail.NewClickTrackingSetting()
	clickTracking.SetEnable(false)
	clickTracking.SetEnableText(false)
	trackingSettings.SetClickTracking(clickTracking)
	// Also disable open tracking for privacy
	openTracking := mail.NewOpenTrackingSetting()
	openTracking.SetEnable(false)
	trackingSettings.SetOpenTracking(openTracking)
	m.SetTrackingSettings(trackingSettings)

	response, err := p.client.SendWithContext(ctx, m)
	if err != nil {
		return &SendResult{
			ProviderName: "SendGrid",
			Success:      false,
			Error:        err,
		}, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var messageID string
		if ids, ok := response.Headers["X-Message-Id"]; ok && len(ids) > 0 {
			messageID = ids[0]
		}
		return &SendResult{
			ProviderID:   messageID,
			ProviderName: "SendGrid",
			Success:      true,
			ProviderData: map[string]interface{}{
				"status_code": response.StatusCode,
			},
		}, nil
	}

	err = fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	return &SendResult{
		ProviderName: "SendGrid",
		Success:      false,
		Error:        err,
	}, err
}

// GetName returns the provider name
func (p *SendGridProvider) GetName() string {
	return "SendGrid"
}

// SMTPProvider implements email sending via SMTP
type SMTPProvider struct {
	host     string
	port     string
	username string
	password string
	from     string
	fromName string
}

// NewSMTPProvider creates a new SMTP email provider
func NewSMTPProvider(cfg config.EmailConfig) *SMTPProvider {
	return &SMTPProvider{
		host:     cfg.SMTPHost,
		port:     fmt.Sprintf("%d", cfg.SMTPPort),
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// Send sends an email via SMTP
func (p *SMTPProvider) Send(ctx context.Context, message *EmailMessage) (*SendResult, error) {
	from := p.from
	if p.fromName != "" {
		from = fmt.Sprintf("%s <%s>", p.fromName, p.from)
	}

	headers := map[string]string{
		"From":         from,
		"To":           message.To,
		"Subject":      message.Subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=utf-8",
	}

	var emailBuilder strings.Builder
	for k, v := range headers {
		emailBuilder.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	emailBuilder.WriteString("\r\n")
	emailBuilder.WriteString(message.Body)

	var auth smtp.Auth
	if p.username != "" {
		auth = smtp.PlainAuth("", p.username, p.password, p.host)
	}
	addr := net.JoinHostPort(p.host, p.port)

	if err := smtp.SendMail(addr, auth, p.from, []string{message.To}, []byte(emailBuilder.String())); err != nil {
		return &SendResult{
			ProviderName: "SMTP",
			Success:      false,
			Error:        err,
		}, err
	}

	return &SendResult{
		ProviderName: "SMTP",
		Success:      true,
		ProviderData: map[string]interface{}{
			"to":      message.To,
			"subject": message.Subject,
		},
	}, nil
}

// GetName returns the provider name
func (p *SMTPProvider) GetName() string {
	return "SMTP"
}
