package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
)

// NotificationRecord is a transactional-outbox row: the notify command only
// writes the record; an asynchronous dispatcher publishes it to Pub/Sub.
// The core never awaits delivery.
type NotificationRecord struct {
	ID            int                       `gorm:"primary_key" json:"id"`
	InvoiceId     int                       `gorm:"index;not null" json:"invoice_id"`
	AreaId        int                       `gorm:"not null" json:"area_id"`
	Recipients    []string                  `gorm:"serializer:json" json:"recipients"`
	Subject       string                    `gorm:"size:255;not null" json:"subject"`
	Body          string                    `gorm:"size:1000;not null" json:"body"`
	PublishStatus NotificationPublishStatus `gorm:"size:20;not null;default:PENDING;index" json:"publish_status"`
	AttemptCount  int                       `gorm:"not null;default:0" json:"attempt_count"`
	NextAttemptAt *time.Time                `json:"next_attempt_at,omitempty"`
	LockedBy      string                    `gorm:"size:64" json:"locked_by"`
	LockedAt      *time.Time                `json:"locked_at,omitempty"`
	PublishedAt   *time.Time                `json:"published_at,omitempty"`
	CorrelationId string                    `gorm:"size:64" json:"correlation_id"`
	CreatedAt     time.Time                 `gorm:"autoCreateTime" json:"created_at"`
}

// ComposeAreaNotification builds the message for a "cobrar área" action:
// subject references the invoice number, body references the area name.
func ComposeAreaNotification(invoice *Invoice, areaName string) (subject string, body string) {
	subject = fmt.Sprintf("Pendência na Nota %s", invoice.NfeNumber)
	body = fmt.Sprintf("Favor verificar inconsistências pendentes na área de %s.", areaName)
	return subject, body
}

// NotifyArea enqueues a notification addressed to the area's email list.
// It changes no invoice state and may be invoked regardless of resolution
// state. A deleted area degrades to the unknown-area placeholder with an
// empty recipient list.
func NotifyArea(ctx context.Context, invoiceId int, areaId int) (*NotificationRecord, error) {
	invoice, err := GetInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}

	areaName := UnknownAreaName
	recipients := []string{}
	area, err := GetArea(ctx, areaId)
	if err != nil && !errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, err
	}
	if area != nil {
		areaName = area.Name
		recipients = area.Emails
	}

	subject, body := ComposeAreaNotification(invoice, areaName)

	record := NotificationRecord{
		InvoiceId:     invoice.ID,
		AreaId:        areaId,
		Recipients:    recipients,
		Subject:       subject,
		Body:          body,
		PublishStatus: NotificationPublishStatusPending,
		CorrelationId: correlationIdFromContextOrNew(ctx),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
