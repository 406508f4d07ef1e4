package dto

type CategoryFilters struct {
	// ParentID filters children of one category; the empty string selects
	// root categories (parent IS NULL). Nil means no parent filter.
	ParentID *string
	Page     int
	PageSize int
}
