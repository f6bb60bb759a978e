package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/employee-be/internal/auth"
	"github.com/hongminglow/employee-be/internal/logging"
	"github.com/hongminglow/employee-be/internal/models"
)

func identityProbe(seen *auth.Identity, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, *found = auth.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "issuer", time.Hour)
	token, err := tokens.Generate(models.Account{ID: "42", Username: "ada"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"valid bearer", "Bearer " + token, true},
		{"lowercase scheme", "bearer " + token, true},
		{"missing header", "", false},
		{"wrong scheme", "Basic " + token, false},
		{"garbage token", "Bearer not-a-jwt", false},
		{"empty token", "Bearer   ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var (
				seen  auth.Identity
				found bool
			)
			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			Identity(tokens, identityProbe(&seen, &found)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code, "never rejects")
			assert.Equal(t, tc.want, found)
			if tc.want {
				assert.Equal(t, auth.Identity{UserID: "42", Username: "ada"}, seen)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("allow all", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"*"}, next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Origin", "https://App.example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"https://app.example.com/"}, next).ServeHTTP(rec, req)

		assert.Equal(t, "https://App.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"https://app.example.com"}, next).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		CORS([]string{"*"}, next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewLogrusLogger(&buf, "debug", "text")
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	Logging(log, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/health")
	assert.Contains(t, out, "status=201")
	assert.Contains(t, out, "bytes=2")
}
