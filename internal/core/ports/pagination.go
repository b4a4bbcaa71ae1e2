package ports

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage bounds the offset a caller can request.
	MaxPage = 1_000_000
)

// PageInfo is the pagination metadata returned alongside list results.
type PageInfo struct {
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NormalizePage applies defaults and caps to a requested page.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// NewPageInfo derives page metadata from a total count.
func NewPageInfo(total int64, page, pageSize int) PageInfo {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageInfo{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
