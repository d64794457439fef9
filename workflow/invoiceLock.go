package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireInvoiceMutationLock serializes resolve/undo/reassign per invoice
// across instances using MySQL advisory locks.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that will run the mutation transaction.
func AcquireInvoiceMutationLock(tx *gorm.DB, invoiceId int) error {
	lockName := fmt.Sprintf("invoice:%d", invoiceId)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire mutation lock for invoice_id=%d", invoiceId)
	}
	return nil
}

func ReleaseInvoiceMutationLock(tx *gorm.DB, invoiceId int) {
	lockName := fmt.Sprintf("invoice:%d", invoiceId)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
