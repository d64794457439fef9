package models

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/utils"
	"gorm.io/gorm"
)

// Inconsistency is a single defect found on an invoice, owned by exactly
// one area at a time. The four resolution fields form a group: either the
// item is resolved and all of them are set, or none of the optional ones
// are present.
type Inconsistency struct {
	ID            int        `gorm:"primary_key" json:"id"`
	InvoiceId     int        `gorm:"index;not null" json:"invoice_id"`
	Description   string     `gorm:"size:255;not null" json:"description" binding:"required"`
	AreaId        int        `gorm:"not null" json:"area_id" binding:"required"`
	IsResolved    bool       `gorm:"not null;default:false" json:"is_resolved"`
	SolutionNotes string     `gorm:"size:500" json:"solution_notes,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy    *int       `json:"resolved_by,omitempty"`
}

type Invoice struct {
	ID              int             `gorm:"primary_key" json:"id"`
	NfeNumber       string          `gorm:"size:20;not null;index" json:"nfe_number" binding:"required"`
	CompanyNumber   string          `gorm:"size:20;not null" json:"company_number" binding:"required"`
	CompanyName     string          `gorm:"size:100;not null" json:"company_name" binding:"required"`
	AccessKey       string          `gorm:"size:44;not null" json:"access_key" binding:"required"`
	IssueDate       time.Time       `gorm:"type:date;not null" json:"issue_date"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	Observations    string          `gorm:"size:1000" json:"observations"`
	Inconsistencies []Inconsistency `gorm:"constraint:OnDelete:CASCADE" json:"inconsistencies"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInconsistency struct {
	Description string `json:"description" binding:"required"`
	AreaId      int    `json:"area_id" binding:"required"`
}

type NewInvoice struct {
	NfeNumber       string             `json:"nfe_number" binding:"required"`
	CompanyNumber   string             `json:"company_number" binding:"required"`
	CompanyName     string             `json:"company_name" binding:"required"`
	AccessKey       string             `json:"access_key" binding:"required"`
	IssueDate       string             `json:"issue_date" binding:"required"`
	Observations    string             `json:"observations"`
	Inconsistencies []NewInconsistency `json:"inconsistencies"`
}

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MinSolutionNoteLen is the policy minimum for per-item solution notes.
func MinSolutionNoteLen() int {
	n, err := strconv.Atoi(os.Getenv("MIN_SOLUTION_NOTE_LEN"))
	if err != nil || n < 1 {
		return 5
	}
	return n
}

/* state transitions (pure, no persistence) */

// Resolve moves a pending item to resolved, setting the whole resolution
// group. Rejected attempts leave the item untouched.
func (inc *Inconsistency) Resolve(note string, userId int, now time.Time) error {
	if inc.IsResolved {
		return utils.NewValidationError("inconsistency is already resolved")
	}
	if utf8.RuneCountInString(strings.TrimSpace(note)) < MinSolutionNoteLen() {
		return utils.NewValidationError("solution note must have at least %d characters", MinSolutionNoteLen())
	}
	inc.IsResolved = true
	inc.SolutionNotes = note
	inc.ResolvedAt = &now
	inc.ResolvedBy = &userId
	return nil
}

// Undo returns a resolved item to pending and clears the resolution group.
// The prior note is returned as a staging value so an editor can pre-fill it.
func (inc *Inconsistency) Undo() (string, error) {
	if !inc.IsResolved {
		return "", utils.NewStateError("inconsistency is not resolved")
	}
	staged := inc.SolutionNotes
	inc.IsResolved = false
	inc.SolutionNotes = ""
	inc.ResolvedAt = nil
	inc.ResolvedBy = nil
	return staged, nil
}

// Reassign moves a pending item to another area. Resolution history must
// not silently change ownership, so resolved items are rejected.
func (inc *Inconsistency) Reassign(newAreaId int) error {
	if inc.IsResolved {
		return utils.NewStateError("cannot reassign area of a resolved inconsistency")
	}
	inc.AreaId = newAreaId
	return nil
}

func (inv *Invoice) UnresolvedCount() int {
	count := 0
	for _, inc := range inv.Inconsistencies {
		if !inc.IsResolved {
			count++
		}
	}
	return count
}

func (inv *Invoice) FindInconsistency(id int) *Inconsistency {
	for i := range inv.Inconsistencies {
		if inv.Inconsistencies[i].ID == id {
			return &inv.Inconsistencies[i]
		}
	}
	return nil
}

// RecomputeResolvedAt keeps the invoice aggregate in step with its items:
// set once when the last item resolves, cleared when any item pends again.
// An already-set timestamp is never overwritten on a no-op save.
// Reports whether the field changed.
func (inv *Invoice) RecomputeResolvedAt(now time.Time) bool {
	if inv.UnresolvedCount() == 0 {
		if inv.ResolvedAt == nil {
			inv.ResolvedAt = &now
			return true
		}
		return false
	}
	if inv.ResolvedAt != nil {
		inv.ResolvedAt = nil
		return true
	}
	return false
}

/* persistence */

func CreateInvoice(ctx context.Context, input *NewInvoice) (*Invoice, error) {
	issueDate, err := ParseDate(input.IssueDate)
	if err != nil {
		return nil, utils.NewValidationError("issue_date must use the %s layout", DateLayout)
	}

	invoice := Invoice{
		NfeNumber:     input.NfeNumber,
		CompanyNumber: input.CompanyNumber,
		CompanyName:   input.CompanyName,
		AccessKey:     input.AccessKey,
		IssueDate:     issueDate,
		Observations:  input.Observations,
	}
	for _, item := range input.Inconsistencies {
		invoice.Inconsistencies = append(invoice.Inconsistencies, Inconsistency{
			Description: item.Description,
			AreaId:      item.AreaId,
		})
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	return utils.FetchModel[Invoice](ctx, id, "Inconsistencies")
}

// FetchInvoicesWithItems loads the whole collection in insertion order.
// The filter engine and the analytics aggregator both run over this view.
func FetchInvoicesWithItems(ctx context.Context) ([]*Invoice, error) {
	db := config.GetDB()
	var results []*Invoice
	err := db.WithContext(ctx).
		Preload("Inconsistencies", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Order("id").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func UpdateInvoiceObservations(ctx context.Context, id int, observations string) (*Invoice, error) {
	invoice, err := utils.FetchModel[Invoice](ctx, id, "Inconsistencies")
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&Invoice{}).Where("id = ?", id).
		Update("observations", observations).Error
	if err != nil {
		return nil, err
	}
	invoice.Observations = observations
	return invoice, nil
}

// ListInvoices applies the filter engine and pagination over the ordered
// collection.
func ListInvoices(ctx context.Context, filter *InvoiceFilter, page int, pageSize int) (*PagedInvoices, error) {
	invoices, err := FetchInvoicesWithItems(ctx)
	if err != nil {
		return nil, err
	}
	filtered := FilterInvoices(invoices, filter)
	return PaginateInvoices(filtered, page, pageSize), nil
}
