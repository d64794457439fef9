package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/models"
)

// NotificationDispatcher drains the notification outbox: NotifyArea only
// writes a NotificationRecord inside the request transaction, and this
// poller publishes the records to Pub/Sub after commit. Multiple instances
// may run concurrently; SKIP LOCKED plus the per-row lock columns keep them
// from double-publishing.
type NotificationDispatcher struct {
	DB           *gorm.DB
	Logger       *logrus.Logger
	DispatcherID string

	BatchSize      int
	PollInterval   time.Duration
	LockTimeout    time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

func NewNotificationDispatcher(db *gorm.DB, logger *logrus.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		DB:             db,
		Logger:         logger,
		DispatcherID:   uuid.NewString(),
		BatchSize:      50,
		PollInterval:   500 * time.Millisecond,
		LockTimeout:    30 * time.Second,
		MaxAttempts:    20,
		InitialBackoff: 5 * time.Second,
	}
}

func (d *NotificationDispatcher) Run(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		d.dispatchOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.PollInterval):
		}
	}
}

func (d *NotificationDispatcher) dispatchOnce(ctx context.Context) {
	now := time.Now().UTC()
	staleBefore := now.Add(-d.LockTimeout)
	db := d.DB
	if db == nil {
		return
	}

	var claimed []models.NotificationRecord
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Eligible:
		// - PENDING / FAILED and ready to retry
		// - rows whose claim lock went stale (dispatcher crashed mid-batch)
		q := tx.
			Where(`
				(
					publish_status IN ? AND locked_at IS NULL AND (next_attempt_at IS NULL OR next_attempt_at <= ?)
				)
				OR
				(
					publish_status = ? AND locked_at IS NOT NULL AND locked_at <= ?
				)
			`, []models.NotificationPublishStatus{
				models.NotificationPublishStatusPending,
				models.NotificationPublishStatusFailed,
			}, now, models.NotificationPublishStatusPending, staleBefore).
			Order("id ASC").
			Limit(d.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		for i := range claimed {
			if err := tx.Model(&models.NotificationRecord{}).Where("id = ?", claimed[i].ID).
				Updates(map[string]interface{}{
					"locked_at":     &now,
					"locked_by":     d.DispatcherID,
					"attempt_count": gorm.Expr("attempt_count + 1"),
				}).Error; err != nil {
				return err
			}
			claimed[i].AttemptCount++
		}
		return nil
	})
	if err != nil || len(claimed) == 0 {
		return
	}

	for _, rec := range claimed {
		msg := config.NotificationMessage{
			ID:            rec.ID,
			AreaId:        rec.AreaId,
			Recipients:    rec.Recipients,
			Subject:       rec.Subject,
			Body:          rec.Body,
			RequestedAt:   rec.CreatedAt,
			CorrelationId: rec.CorrelationId,
		}
		if _, pubErr := config.PublishNotification(ctx, msg); pubErr != nil {
			d.markPublishFailed(ctx, rec, pubErr)
			continue
		}
		d.markPublished(ctx, rec.ID, now)
	}
}

func (d *NotificationDispatcher) markPublished(ctx context.Context, recordID int, now time.Time) {
	_ = d.DB.WithContext(ctx).Model(&models.NotificationRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"publish_status":  models.NotificationPublishStatusPublished,
			"published_at":    &now,
			"locked_at":       nil,
			"locked_by":       "",
			"next_attempt_at": nil,
		}).Error
}

func (d *NotificationDispatcher) markPublishFailed(ctx context.Context, rec models.NotificationRecord, pubErr error) {
	db := d.DB.WithContext(ctx)
	now := time.Now().UTC()

	// Terminal after MaxAttempts: the row stays FAILED with no retry scheduled.
	if d.MaxAttempts > 0 && rec.AttemptCount >= d.MaxAttempts {
		_ = db.Model(&models.NotificationRecord{}).
			Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"publish_status":  models.NotificationPublishStatusFailed,
				"next_attempt_at": nil,
				"locked_at":       nil,
				"locked_by":       "",
			}).Error
		if d.Logger != nil {
			d.Logger.WithFields(logrus.Fields{
				"field":      "NotificationDispatcher",
				"record_id":  rec.ID,
				"invoice_id": rec.InvoiceId,
				"attempt":    rec.AttemptCount,
			}).Error("notification publish abandoned after max attempts: " + fmt.Sprintf("%v", pubErr))
		}
		return
	}

	backoff := d.InitialBackoff
	for i := 1; i < rec.AttemptCount; i++ {
		backoff *= 2
		if backoff > time.Minute*10 {
			backoff = time.Minute * 10
			break
		}
	}
	next := now.Add(backoff)
	_ = db.Model(&models.NotificationRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"publish_status":  models.NotificationPublishStatusFailed,
			"next_attempt_at": &next,
			"locked_at":       nil,
			"locked_by":       "",
		}).Error

	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{
			"field":           "NotificationDispatcher",
			"record_id":       rec.ID,
			"invoice_id":      rec.InvoiceId,
			"attempt":         rec.AttemptCount,
			"next_attempt_at": next.Format(time.RFC3339Nano),
		}).Error("notification publish failed: " + fmt.Sprintf("%v", pubErr))
	}
}
