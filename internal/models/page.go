package models

// PageSize is the fixed number of items per page for paginated listings.
const PageSize = 5

// Page is the envelope returned by every paginated listing. Page index is
// 0-based.
type Page struct {
	Items      any   `json:"items"`
	Page       int   `json:"page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPage builds a Page envelope from a slice and the unpaginated row count.
func NewPage(items any, page int, totalCount int64) Page {
	totalPages := int(totalCount) / PageSize
	if int(totalCount)%PageSize != 0 {
		totalPages++
	}
	return Page{
		Items:      items,
		Page:       page,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
