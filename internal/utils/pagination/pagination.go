package pagination

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize within int for every allowed page size.
	MaxPage = math.MaxInt / MaxPageSize
)

type Pagination struct {
	Page     int
	PageSize int
	Offset   int
	Total    int64
}

// New clamps page and pageSize into range and computes the offset. Values
// below one fall back to the defaults; page is capped at MaxPage and
// pageSize at MaxPageSize.
func New(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// ParseFromRequest handles pagination parameters from Fiber context
func ParseFromRequest(c *fiber.Ctx) Pagination {
	page, _ := strconv.Atoi(c.Query("page", strconv.Itoa(DefaultPage)))
	pageSize, _ := strconv.Atoi(c.Query("page_size", strconv.Itoa(DefaultPageSize)))
	return New(page, pageSize)
}

// TotalPages calculates the number of pages based on the total items and items per page.
func (p Pagination) TotalPages() int64 {
	if p.PageSize < 1 {
		return 0
	}
	totalPages := p.Total / int64(p.PageSize)
	if p.Total%int64(p.PageSize) > 0 {
		totalPages++
	}
	return totalPages
}

// Response creates a standardized pagination response
func Response(p Pagination, data interface{}) fiber.Map {
	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"current_page": p.Page,
			"per_page":     p.PageSize,
			"total_items":  p.Total,
			"total_pages":  p.TotalPages(),
		},
	}
}
