package helpers

import (
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name       string
		page, size int
		want       []int
		totalPages int
		current    int
	}{
		{name: "first page", page: 1, size: 2, want: []int{1, 2}, totalPages: 3, current: 1},
		{name: "last partial page", page: 3, size: 2, want: []int{5}, totalPages: 3, current: 3},
		{name: "past the end", page: 9, size: 2, want: []int{}, totalPages: 3, current: 3},
		{name: "invalid page", page: 0, size: 10, want: []int{1, 2, 3, 4, 5}, totalPages: 1, current: 1},
		{name: "huge page", page: 461168601842738792, size: 20, want: []int{}, totalPages: 1, current: 1},
		{name: "max int page", page: math.MaxInt, size: 2, want: []int{}, totalPages: 3, current: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, info := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.totalPages, info.TotalPages)
			assert.Equal(t, tt.current, info.CurrentPage)
			assert.Equal(t, 5, info.TotalItems)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	got, info := Paginate([]string{}, 1, 10)
	assert.Empty(t, got)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.TotalItems)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		page     int
		pageSize int
	}{
		{query: "", page: DefaultPage, pageSize: DefaultPageSize},
		{query: "?page=3&size=5", page: 3, pageSize: 5},
		{query: "?page=-1&size=1000", page: DefaultPage, pageSize: DefaultPageSize},
		{query: "?page=abc", page: DefaultPage, pageSize: DefaultPageSize},
		{query: "?page=461168601842738792", page: 461168601842738792, pageSize: DefaultPageSize},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/payments"+tt.query, nil)

		page, size := ParsePaginationParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.pageSize, size, tt.query)
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
