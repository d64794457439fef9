package models

import "errors"

type UserRole string

const (
	UserRoleGeneral        UserRole = "GENERAL"
	UserRoleAreaSpecialist UserRole = "AREA_SPECIALIST"
)

func (r UserRole) Valid() bool {
	return r == UserRoleGeneral || r == UserRoleAreaSpecialist
}

// page-permission tags carried on User.AllowedPages
const (
	PageDashboard = "dashboard"
	PageReports   = "reports"
	PageAreas     = "areas"
	PageUsers     = "users"
)

// report-permission tags carried on User.AllowedReports
const (
	ReportProactivity = "proactivity"
	ReportMotives     = "motives"
)

// InvoiceStatusFilter selects invoices by their pending-inconsistency count.
type InvoiceStatusFilter string

const (
	InvoiceStatusAll      InvoiceStatusFilter = "all"
	InvoiceStatusPending  InvoiceStatusFilter = "pending"
	InvoiceStatusResolved InvoiceStatusFilter = "resolved"
)

func ParseInvoiceStatusFilter(s string) (InvoiceStatusFilter, error) {
	switch s {
	case "", string(InvoiceStatusAll):
		return InvoiceStatusAll, nil
	case string(InvoiceStatusPending):
		return InvoiceStatusPending, nil
	case string(InvoiceStatusResolved):
		return InvoiceStatusResolved, nil
	default:
		return "", errors.New("invalid invoice status filter")
	}
}

type NotificationPublishStatus string

const (
	NotificationPublishStatusPending   NotificationPublishStatus = "PENDING"
	NotificationPublishStatusPublished NotificationPublishStatus = "PUBLISHED"
	NotificationPublishStatusFailed    NotificationPublishStatus = "FAILED"
)
