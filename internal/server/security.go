package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/modstanding/internal/logger"
)

// AuthMiddleware requires the staff API key on every non-public path
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector counts requests and failed logins per IP in a fixed window
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	window           time.Duration
	maxRequests      int
	failedAuthAlert  int
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
	now              func() time.Time
}

// NewSuspiciousActivityDetector creates a detector with the default limits
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		window:           DefaultDetectorWindow,
		maxRequests:      DefaultMaxRequests,
		failedAuthAlert:  DefaultFailedAuthAlert,
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      time.Now(),
		now:              time.Now,
	}
}

// RecordFailedAuth records a failed authentication attempt and alerts past the threshold
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuthByIP[ip]++
	if count := s.failedAuthByIP[ip]; count >= s.failedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// RecordRequest records a request and returns false once the IP is over its limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requestCountByIP[ip]++
	count := s.requestCountByIP[ip]
	if count <= s.maxRequests {
		return true
	}
	if count%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

// rollWindow clears the counters once the window has elapsed. Caller holds mu.
func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.now()
	if now.Sub(s.windowStart) > s.window {
		s.requestCountByIP = make(map[string]int)
		s.failedAuthByIP = make(map[string]int)
		s.windowStart = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP request limit
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// X-Forwarded-For is only honored when the direct peer is a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	trusted := false
	for _, proxy := range trustedProxies {
		if proxy == remoteIP {
			trusted = true
			break
		}
	}
	if !trusted {
		return remoteIP
	}

	// rightmost entry is the hop that reached the trusted proxy
	if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
