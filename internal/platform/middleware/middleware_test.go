// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomishelf/internal/platform/constants"
	"github.com/taibuivan/yomishelf/internal/platform/ctxutil"
	"github.com/taibuivan/yomishelf/internal/platform/middleware"
	"github.com/taibuivan/yomishelf/internal/platform/sec"
)

// fakeVerifier accepts tokens named after a role.
type fakeVerifier struct{}

func (fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	role := sec.UserRole(token)
	if !role.IsValid() {
		return nil, errors.New("bad token")
	}
	return &sec.AuthClaims{UserID: "user-" + token, Role: token}, nil
}

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireRole checks the status for each combination of token and role.
*/
func TestRequireRole(t *testing.T) {
	chain := middleware.Authenticate(fakeVerifier{})(middleware.RequireRole(sec.RoleEditor)(okHandler))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"malformed header", "Token editor", http.StatusUnauthorized},
		{"invalid token", "Bearer nobody", http.StatusUnauthorized},
		{"insufficient role", "Bearer reader", http.StatusForbidden},
		{"exact role", "Bearer editor", http.StatusOK},
		{"higher role", "bearer admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/manga", nil)
			if tt.header != "" {
				request.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			assert.Equal(t, tt.want, serve(chain, request).Code)
		})
	}
}

/*
TestAuthenticate_InjectsClaims verifies downstream handlers see the claims.
*/
func TestAuthenticate_InjectsClaims(t *testing.T) {
	var seen *sec.AuthClaims
	chain := middleware.Authenticate(fakeVerifier{})(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = middleware.GetUser(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer admin")
	serve(chain, request)

	if assert.NotNil(t, seen) {
		assert.Equal(t, "user-admin", seen.UserID)
	}
}

/*
TestRequestID propagates a client ID and generates one when absent.
*/
func TestRequestID(t *testing.T) {
	var seen string
	chain := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "req-42")
	recorder := serve(chain, request)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", recorder.Header().Get(constants.HeaderXRequestID))

	recorder = serve(chain, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRateLimiter exhausts a single-token bucket.
*/
func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)
	chain := limiter.Handler(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRealIP, "203.0.113.7")

	assert.Equal(t, http.StatusOK, serve(chain, request).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(chain, request).Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.Header.Set(constants.HeaderXRealIP, "203.0.113.8")
	assert.Equal(t, http.StatusOK, serve(chain, other).Code)

	limiter.Sweep(0)
	assert.Equal(t, http.StatusOK, serve(chain, request).Code)
}

/*
TestPanicRecovery turns a panic into a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	chain := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(chain, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS allows listed origins in production and answers preflights.
*/
func TestCORS(t *testing.T) {
	chain := middleware.CORS(corsConfig{origins: []string{"https://shelf.example"}})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://shelf.example")
	assert.Equal(t, "https://shelf.example", serve(chain, request).Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example")
	assert.Empty(t, serve(chain, request).Header().Get("Access-Control-Allow-Origin"))

	preflight := httptest.NewRequest(http.MethodOptions, "/", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://shelf.example")
	assert.Equal(t, http.StatusNoContent, serve(chain, preflight).Code)
}
