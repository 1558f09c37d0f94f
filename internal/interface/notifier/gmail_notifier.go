package notifier

import (
	"context"
	"encoding/base64"
	"fmt"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailNotifier delivers price drop alerts and daily reports through
// the Gmail API
type GmailNotifier struct {
	gmailService *gmail.Service
	sender       string
	recipient    string
	logger       logger.Logger
}

// NewGmailNotifier creates a new Gmail notifier
func NewGmailNotifier(ctx context.Context, tokenSource oauth2.TokenSource, sender, recipient string, logger logger.Logger) (*GmailNotifier, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &GmailNotifier{
		gmailService: service,
		sender:       sender,
		recipient:    recipient,
		logger:       logger,
	}, nil
}

// SendPriceDropAlert sends a price drop email
func (n *GmailNotifier) SendPriceDropAlert(ctx context.Context, event *entity.PriceDropEvent) error {
	subject := templates.PriceDropSubject(event)
	body := templates.PriceDropBody(event)

	if err := n.send(ctx, subject, body); err != nil {
		return fmt.Errorf("sending price drop alert: %w", err)
	}
	n.logger.Info("Price drop alert sent",
		"departureDate", event.DepartureDate,
		"drop", event.Drop,
		"recipient", n.recipient)
	return nil
}

// SendDailyReport sends the daily summary email
func (n *GmailNotifier) SendDailyReport(ctx context.Context, report *entity.DailyReport) error {
	subject := templates.DailyReportSubject(report)
	body := templates.DailyReportBody(report)

	if err := n.send(ctx, subject, body); err != nil {
		return fmt.Errorf("sending daily report: %w", err)
	}
	n.logger.Info("Daily report sent",
		"departureDate", report.DepartureDate,
		"recipient", n.recipient)
	return nil
}

func (n *GmailNotifier) send(ctx context.Context, subject, body string) error {
	raw := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		n.sender, n.recipient, subject, body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := n.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	return err
}
