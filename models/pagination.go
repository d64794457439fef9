package models

import (
	"os"
	"strconv"
)

// PagedInvoices is one 1-based window over a filtered, ordered sequence.
// StartIndex/EndIndex are the clipped half-open slice bounds.
type PagedInvoices struct {
	Items      []*Invoice `json:"items"`
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
	StartIndex int        `json:"start_index"`
	EndIndex   int        `json:"end_index"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
}

func DefaultPageSize() int {
	n, err := strconv.Atoi(os.Getenv("INVOICES_PAGE_SIZE"))
	if err != nil || n < 1 {
		return 5
	}
	return n
}

// PaginateInvoices windows the sequence. An out-of-range page yields an
// empty slice, never an error.
func PaginateInvoices(seq []*Invoice, page int, pageSize int) *PagedInvoices {
	if pageSize < 1 {
		pageSize = DefaultPageSize()
	}
	if page < 1 {
		page = 1
	}

	total := len(seq)
	totalPages := (total + pageSize - 1) / pageSize

	startIndex := (page - 1) * pageSize
	if startIndex > total {
		startIndex = total
	}
	endIndex := startIndex + pageSize
	if endIndex > total {
		endIndex = total
	}

	return &PagedInvoices{
		Items:      seq[startIndex:endIndex],
		TotalCount: total,
		TotalPages: totalPages,
		StartIndex: startIndex,
		EndIndex:   endIndex,
		Page:       page,
		PageSize:   pageSize,
	}
}
