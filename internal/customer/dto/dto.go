package dto

type CustomerFilters struct {
	Query    string
	Page     int
	PageSize int
}
