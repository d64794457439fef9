package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"gorm.io/gorm"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/models"
	"github.com/mmdatafocus/notas_backend/utils"
)

const redisLockLifespan = 30 * time.Second

// withInvoiceMutation runs fn inside a transaction that holds the per-invoice
// advisory lock. A redis lock is taken first as a cheap cross-instance
// fast path; the MySQL lock is the one that actually guarantees exclusion,
// so a redis failure only degrades to the slower path.
func withInvoiceMutation(ctx context.Context, invoiceId int, fn func(tx *gorm.DB) error) error {
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("InvoiceLock:%d", invoiceId), redisLockLifespan, nil)
		if err == nil {
			defer func() {
				_ = lock.Release(ctx)
			}()
		} else if err != redislock.ErrNotObtained {
			config.GetLogger().WithField("invoice_id", invoiceId).
				Warn("redis lock unavailable, relying on database lock")
		}
	}

	db := config.GetDB().WithContext(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := AcquireInvoiceMutationLock(tx, invoiceId); err != nil {
			return err
		}
		defer ReleaseInvoiceMutationLock(tx, invoiceId)
		return fn(tx)
	})
}

func actingUser(ctx context.Context) (*models.User, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok || userId <= 0 {
		return nil, utils.NewPermissionError("no authenticated user in request context")
	}
	return models.GetUser(ctx, userId)
}

func fetchInvoiceForUpdate(tx *gorm.DB, invoiceId int) (*models.Invoice, error) {
	var invoice models.Invoice
	err := tx.Preload("Inconsistencies", func(q *gorm.DB) *gorm.DB {
		return q.Order("id")
	}).First(&invoice, invoiceId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func persistInconsistency(tx *gorm.DB, item *models.Inconsistency) error {
	return tx.Model(&models.Inconsistency{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"area_id":        item.AreaId,
			"is_resolved":    item.IsResolved,
			"solution_notes": item.SolutionNotes,
			"resolved_at":    item.ResolvedAt,
			"resolved_by":    item.ResolvedBy,
		}).Error
}

func persistInvoiceResolvedAt(tx *gorm.DB, invoice *models.Invoice) error {
	return tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("resolved_at", invoice.ResolvedAt).Error
}

// ResolveInconsistency marks one inconsistency resolved on behalf of the
// authenticated user, recording the solution note, timestamp and resolver
// together, and rolls the invoice aggregate forward when the last pending
// item closes.
func ResolveInconsistency(ctx context.Context, invoiceId, inconsistencyId int, note string) (*models.Invoice, error) {
	user, err := actingUser(ctx)
	if err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err = withInvoiceMutation(ctx, invoiceId, func(tx *gorm.DB) error {
		inv, err := fetchInvoiceForUpdate(tx, invoiceId)
		if err != nil {
			return err
		}
		item := inv.FindInconsistency(inconsistencyId)
		if item == nil {
			return utils.ErrorRecordNotFound
		}
		if !user.CanResolve(item.AreaId) {
			return utils.NewPermissionError(
				"user %s is not a specialist for area_id=%d", user.Username, item.AreaId)
		}

		now := time.Now().UTC()
		if err := item.Resolve(note, user.ID, now); err != nil {
			return err
		}
		if err := persistInconsistency(tx, item); err != nil {
			return err
		}
		if inv.RecomputeResolvedAt(now) {
			if err := persistInvoiceResolvedAt(tx, inv); err != nil {
				return err
			}
		}
		invoice = inv
		return nil
	})
	if err != nil {
		config.LogError(config.GetLogger(), "workflow", "ResolveInconsistency",
			fmt.Sprintf("invoice_id=%d inconsistency_id=%d", invoiceId, inconsistencyId), note, err)
		return nil, err
	}
	return invoice, nil
}

// UndoResolution reopens a resolved inconsistency. The previous solution note
// is cleared from storage but returned so callers can stage it as the draft
// for the next attempt. The invoice aggregate timestamp is cleared as well,
// since at least one item is pending again.
func UndoResolution(ctx context.Context, invoiceId, inconsistencyId int) (*models.Invoice, string, error) {
	user, err := actingUser(ctx)
	if err != nil {
		return nil, "", err
	}

	var invoice *models.Invoice
	var stagedNote string
	err = withInvoiceMutation(ctx, invoiceId, func(tx *gorm.DB) error {
		inv, err := fetchInvoiceForUpdate(tx, invoiceId)
		if err != nil {
			return err
		}
		item := inv.FindInconsistency(inconsistencyId)
		if item == nil {
			return utils.ErrorRecordNotFound
		}
		if !user.CanResolve(item.AreaId) {
			return utils.NewPermissionError(
				"user %s is not a specialist for area_id=%d", user.Username, item.AreaId)
		}

		note, err := item.Undo()
		if err != nil {
			return err
		}
		stagedNote = note
		if err := persistInconsistency(tx, item); err != nil {
			return err
		}
		if inv.RecomputeResolvedAt(time.Now().UTC()) {
			if err := persistInvoiceResolvedAt(tx, inv); err != nil {
				return err
			}
		}
		invoice = inv
		return nil
	})
	if err != nil {
		config.LogError(config.GetLogger(), "workflow", "UndoResolution",
			fmt.Sprintf("invoice_id=%d inconsistency_id=%d", invoiceId, inconsistencyId), nil, err)
		return nil, "", err
	}
	return invoice, stagedNote, nil
}

// ReassignArea routes a pending inconsistency to another area. Reassignment
// is a triage action, open to any authenticated user regardless of area
// scope. Resolved items are immutable until undone, and the target area
// must exist.
func ReassignArea(ctx context.Context, invoiceId, inconsistencyId, newAreaId int) (*models.Invoice, error) {
	if _, err := actingUser(ctx); err != nil {
		return nil, err
	}
	if err := utils.ValidateResourceId[models.Area](ctx, newAreaId); err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err := withInvoiceMutation(ctx, invoiceId, func(tx *gorm.DB) error {
		inv, err := fetchInvoiceForUpdate(tx, invoiceId)
		if err != nil {
			return err
		}
		item := inv.FindInconsistency(inconsistencyId)
		if item == nil {
			return utils.ErrorRecordNotFound
		}

		if err := item.Reassign(newAreaId); err != nil {
			return err
		}
		if err := persistInconsistency(tx, item); err != nil {
			return err
		}
		invoice = inv
		return nil
	})
	if err != nil {
		config.LogError(config.GetLogger(), "workflow", "ReassignArea",
			fmt.Sprintf("invoice_id=%d inconsistency_id=%d", invoiceId, inconsistencyId), newAreaId, err)
		return nil, err
	}
	return invoice, nil
}
