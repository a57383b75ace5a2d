package model

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest selects a page of the admin order listing.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request to valid values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderPage is one page of composed orders plus counters.
type OrderPage struct {
	Orders []ComposedOrder
	Total  int64
	Page   int
	Limit  int
	Pages  int
}

// PageCount returns how many pages of size limit hold total items.
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
