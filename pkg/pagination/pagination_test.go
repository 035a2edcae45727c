package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit values", "page=3&limit=50", 3, 50, 100},
		{"limit clamped to max", "page=1&limit=500", 1, 100, 0},
		{"zero page falls back", "page=0&limit=10", 1, 10, 0},
		{"negative values fall back", "page=-2&limit=-5", 1, 20, 0},
		{"garbage falls back", "page=abc&limit=xyz", 1, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paramsFor(t, tt.query)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("Parse(%q) = %+v, want page=%d limit=%d offset=%d",
					tt.query, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
