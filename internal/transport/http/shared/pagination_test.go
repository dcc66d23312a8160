package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 50, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"capped at max", "limit=999", 200, 0},
		{"garbage ignored", "limit=abc&offset=-5", 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/?"+tt.query, nil)
			p := ParsePagination(r, 50, 200)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestClientIPUsesRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3:41000"
	assert.Equal(t, "10.1.2.3", ClientIP(r))
}

func TestClientIPIgnoresForwardedHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3:41000"
	r.Header.Set("X-Forwarded-For", "203.0.113.50")
	assert.Equal(t, "10.1.2.3", ClientIP(r))
}

func TestClientIPWithoutPort(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3"
	assert.Equal(t, "10.1.2.3", ClientIP(r))
}
