package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{"Valid API Key", apiKey, "/api/v1/punishment-types", http.StatusOK},
		{"Invalid API Key", "wrong-key", "/api/v1/punishment-types", http.StatusUnauthorized},
		{"Missing API Key", "", "/api/v1/players/p1/standing", http.StatusUnauthorized},
		{"Public Path - Healthz", "", "/healthz", http.StatusOK},
		{"Public Path - Version", "", "/version", http.StatusOK},
		{"Public Path - Metrics", "", "/metrics", http.StatusOK},
		{"Public Path - Swagger", "", "/swagger/index.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			handler := AuthMiddleware(apiKey, nil, detector)(okHandler)

			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_RecordsFailedAttempts(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware("secret", nil, detector)(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/punishment-types", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["10.0.0.7"])
}

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler)

	ip := "192.168.1.100"
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < DefaultMaxRequests; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	detector.mu.Lock()
	assert.Equal(t, DefaultMaxRequests+1, detector.requestCountByIP[ip])
	detector.mu.Unlock()
}

func TestSuspiciousActivityDetector_WindowResets(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	detector.windowStart = current
	detector.now = func() time.Time { return current }
	detector.maxRequests = 2

	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.True(t, detector.RecordRequest("1.2.3.4"))
	assert.False(t, detector.RecordRequest("1.2.3.4"))

	current = current.Add(DefaultDetectorWindow + time.Second)
	assert.True(t, detector.RecordRequest("1.2.3.4"), "new window starts from zero")
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "203.0.113.5:4000", "", nil, "203.0.113.5"},
		{"untrusted forwarded ignored", "203.0.113.5:4000", "198.51.100.1", nil, "203.0.113.5"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:80", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"trusted without header", "10.0.0.1:80", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparsable remote", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get("Referrer-Policy"))
}
