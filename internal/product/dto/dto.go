package dto

type ProductFilters struct {
	SearchQuery     string
	CategoryID      string
	IncludeInactive bool
	SortBy          string // name, price, sort_order
	SortOrder       string // asc, desc
	Page            int
	PageSize        int
}
