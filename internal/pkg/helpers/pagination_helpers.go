package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/isluportal/internal/app/models/dto"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePaginationParams reads ?page=&size=, falling back to the defaults on
// missing or out-of-range values
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page = queryInt(c, "page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	size = queryInt(c, "size", DefaultPageSize)
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

func queryInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}

// Paginate returns one page of items together with its metadata. A page past
// the end is empty and reported as the last page.
func Paginate[T any](items []T, page, size int) ([]T, dto.PaginationInfo) {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	total := len(items)
	pages := total / size
	if total%size != 0 || pages == 0 {
		pages++
	}
	info := dto.PaginationInfo{
		CurrentPage: min(page, pages),
		TotalPages:  pages,
		PageSize:    size,
		TotalItems:  total,
	}
	if page > pages {
		return items[total:], info
	}

	start := (page - 1) * size
	end := min(start+size, total)
	return items[start:end], info
}
