package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// Notifier is the external notification collaborator. The core hands
// over reportable facts; formatting and delivery are its concern.
type Notifier interface {
	SendPriceDropAlert(ctx context.Context, event *entity.PriceDropEvent) error
	SendDailyReport(ctx context.Context, report *entity.DailyReport) error
}
