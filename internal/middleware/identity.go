package middleware

import (
	"net/http"
	"strings"

	"github.com/hongminglow/employee-be/internal/auth"
)

// TokenParser resolves a bearer token into an identity.
type TokenParser interface {
	Parse(token string) (auth.Identity, bool)
}

// Identity attaches the caller's identity to the request context when the
// Authorization header carries a valid bearer token. It never rejects a request;
// protected operations check for the identity themselves.
func Identity(tokens TokenParser, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
			if id, valid := tokens.Parse(token); valid {
				r = r.WithContext(auth.WithIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
