package httpx

import "github.com/gofiber/fiber/v2"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ListResponse struct {
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Rows     interface{} `json:"rows"`
}

// ParsePagination reads page/pageSize query params with the standard
// defaults and cap.
func ParsePagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
