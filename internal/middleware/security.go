package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/laporan-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerXXSSProtection          = "X-XSS-Protection"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerXContentTypeOptions, "nosniff")
		w.Header().Set(headerXFrameOptions, "DENY")
		w.Header().Set(headerXXSSProtection, "1; mode=block")
		w.Header().Set(headerContentSecurityPolicy, "default-src 'self'")
		w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// HostCheck returns 403 when r.Host does not match allowedHost.
// allowedHost is the bare hostname without scheme or port; empty disables the check.
func HostCheck(allowedHost string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowedHost == "" {
				next.ServeHTTP(w, r)
				return
			}
			reqHost := r.Host
			if host, _, err := net.SplitHostPort(reqHost); err == nil {
				reqHost = host
			}
			if !strings.EqualFold(strings.TrimSpace(reqHost), strings.TrimSpace(allowedHost)) {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

const (
	globalRateLimitRPS   = 1
	globalRateLimitBurst = 10

	loginRateLimitEvery = 5 * time.Second
	loginRateLimitBurst = 2

	limiterSweepInterval = 5 * time.Minute
	limiterTTL           = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// ipLimiters hands out one token bucket per client IP. Idle buckets are
// swept on access rather than by a background goroutine.
type ipLimiters struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(limit rate.Limit, burst int) *ipLimiters {
	return &ipLimiters{
		entries:   make(map[string]*limiterEntry),
		limit:     limit,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > limiterTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}

// GlobalRateLimit limits each IP to 1 req/s, burst 10. Returns 429 when exceeded.
func GlobalRateLimit() func(http.Handler) http.Handler {
	limiters := newIPLimiters(rate.Limit(globalRateLimitRPS), globalRateLimitBurst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.allow(clientip.RealClientIP(r)) {
				writeError(w, http.StatusTooManyRequests, "Terlalu banyak permintaan. Coba lagi nanti.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit applies a stricter limit (1 per 5s, burst 2) to the given
// sign-in paths only.
func LoginRateLimit(paths ...string) func(http.Handler) http.Handler {
	loginPaths := make(map[string]bool, len(paths))
	for _, p := range paths {
		loginPaths[p] = true
	}
	limiters := newIPLimiters(rate.Every(loginRateLimitEvery), loginRateLimitBurst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !loginPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			if !limiters.allow(clientip.RealClientIP(r)) {
				writeError(w, http.StatusTooManyRequests, "Terlalu banyak percobaan login. Coba lagi nanti.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProductionSecurity returns middlewares for production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit.
func ProductionSecurity(allowedHost string, loginPaths ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		HostCheck(allowedHost),
		GlobalRateLimit(),
		LoginRateLimit(loginPaths...),
	}
}
