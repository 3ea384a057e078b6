package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "bearer header", header: "Bearer header_token", want: "header_token"},
		{name: "scheme is case insensitive", header: "bearer header_token", want: "header_token"},
		{name: "header wins over cookie", header: "Bearer header_token", cookie: "cookie_token", want: "header_token"},
		{name: "cookie fallback", cookie: "cookie_token", want: "cookie_token"},
		{name: "blank bearer falls back to cookie", header: "Bearer   ", cookie: "cookie_token", want: "cookie_token"},
		{name: "surrounding whitespace trimmed", header: "Bearer  header_token ", want: "header_token"},
		{name: "basic auth ignored", header: "Basic user:pass", want: ""},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}

			assert.Equal(t, tt.want, ExtractAccessToken(req))
		})
	}
}
