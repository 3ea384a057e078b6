package auth

import (
	"net/http"
	"strings"
)

// AccessTokenCookie is set on login for browser clients.
const AccessTokenCookie = "access_token"

const bearerScheme = "bearer"

// ExtractAccessToken reads the Authorization bearer token and falls back to
// the access_token cookie. It returns "" when neither carries a token.
func ExtractAccessToken(r *http.Request) string {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
