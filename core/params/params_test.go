package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewQueryParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryParams
	}{
		{"defaults", "", QueryParams{PageNumber: 1, PageSize: 20}},
		{"explicit", "?page_number=3&page_size=5&search=math", QueryParams{PageNumber: 3, PageSize: 5, Search: "math"}},
		{"garbage", "?page_number=x&page_size=-1", QueryParams{PageNumber: 1, PageSize: 20}},
		{"capped", "?page_size=1000", QueryParams{PageNumber: 1, PageSize: 200}},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tt.want, *NewQueryParams(c))
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, QueryParams{PageNumber: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, QueryParams{PageNumber: 3, PageSize: 20}.Offset())
}
