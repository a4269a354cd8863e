package handler

// Pagination is the standard list envelope metadata. hasMore follows
// total > page*limit.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: total > int64(page*limit),
	}
}
