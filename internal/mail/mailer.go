// Package mail sends ticket delivery emails through a Resend-compatible
// HTTP API, falling back to an EmailJS-compatible endpoint, and finally
// to a log-only sender when no provider is configured.
package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/config"
)

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a provider-independent outgoing email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

// Sender delivers a message through one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewFromConfig builds the delivery chain from configuration. Providers
// are tried in order; the log sender terminates the chain so delivery
// never hard-fails in development.
func NewFromConfig(cfg config.MailConfig, logger *zap.Logger) Sender {
	client := &http.Client{Timeout: 15 * time.Second}

	var chain []Sender
	if cfg.ResendAPIKey != "" {
		chain = append(chain, &ResendSender{
			Endpoint: cfg.ResendEndpoint,
			APIKey:   cfg.ResendAPIKey,
			From:     cfg.From,
			Client:   client,
		})
	}
	if cfg.EmailJSService != "" && cfg.EmailJSTemplate != "" {
		chain = append(chain, &EmailJSSender{
			Endpoint:   cfg.EmailJSEndpoint,
			ServiceID:  cfg.EmailJSService,
			TemplateID: cfg.EmailJSTemplate,
			UserID:     cfg.EmailJSUserID,
			Client:     client,
		})
	}
	chain = append(chain, &LogSender{Logger: logger})

	return &FallbackSender{Senders: chain, Logger: logger}
}

// FallbackSender tries each sender in order until one succeeds.
type FallbackSender struct {
	Senders []Sender
	Logger  *zap.Logger
}

// Send attempts delivery through the chain.
func (f *FallbackSender) Send(ctx context.Context, msg Message) error {
	var lastErr error
	for _, sender := range f.Senders {
		if err := sender.Send(ctx, msg); err != nil {
			lastErr = err
			f.Logger.Warn("mail provider failed, trying next",
				zap.String("to", msg.To), zap.Error(err))
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("no mail providers configured")
	}
	return lastErr
}

// ResendSender posts to a Resend-compatible JSON API.
type ResendSender struct {
	Endpoint string
	APIKey   string
	From     string
	Client   *http.Client
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendPayload struct {
	From        string             `json:"from"`
	To          string             `json:"to"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Send posts the message to the Resend endpoint.
func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	payload := resendPayload{
		From:    s.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	for _, att := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: att.Filename,
			Content:  base64.StdEncoding.EncodeToString(att.Data),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}
	return nil
}

// EmailJSSender posts to an EmailJS-compatible endpoint. EmailJS handles
// templating server-side, so only template parameters travel; attachments
// are not supported by this provider and are dropped.
type EmailJSSender struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	UserID     string
	Client     *http.Client
}

type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the message to the EmailJS endpoint.
func (s *EmailJSSender) Send(ctx context.Context, msg Message) error {
	payload := emailJSPayload{
		ServiceID:  s.ServiceID,
		TemplateID: s.TemplateID,
		UserID:     s.UserID,
		TemplateParams: map[string]string{
			"to_email":     msg.To,
			"subject":      msg.Subject,
			"html_content": msg.HTML,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("emailjs returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender records the delivery instead of sending it.
type LogSender struct {
	Logger *zap.Logger
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mock email delivery",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return nil
}
