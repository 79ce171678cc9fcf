package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
)

const (
	RateLimitWindow      = 120 * time.Second
	RateLimitMaxRequests = 25
	RateLimitKeyPrefix   = "ratelimit:"
	BlockedIPKeyPrefix   = "blocked_ip:"
	BlockedIPDuration    = 24 * time.Hour
)

// RedisRateLimiter is a fixed-window counter per client IP shared by every
// instance of the server. An IP that exceeds the window is blocked for
// BlockFor. Redis errors let the request through.
type RedisRateLimiter struct {
	rdb         *redis.Client
	Window      time.Duration
	MaxRequests int
	BlockFor    time.Duration
	log         logging.Logger
}

func NewRedisRateLimiter(rdb *redis.Client, log logging.Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		rdb:         rdb,
		Window:      RateLimitWindow,
		MaxRequests: RateLimitMaxRequests,
		BlockFor:    BlockedIPDuration,
		log:         log,
	}
}

func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientip.RealClientIP(r)
		blockedKey := BlockedIPKeyPrefix + ip

		blocked, err := l.rdb.Exists(ctx, blockedKey).Result()
		if err == nil && blocked > 0 {
			writeError(w, http.StatusTooManyRequests, "IP Anda diblokir sementara karena terlalu banyak permintaan.")
			return
		}

		key := RateLimitKeyPrefix + ip
		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			logging.FromContext(ctx, l.log).Warn(ctx, "rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.rdb.Expire(ctx, key, l.Window)
		}

		if count > int64(l.MaxRequests) {
			if err := l.rdb.Set(ctx, blockedKey, "1", l.BlockFor).Err(); err != nil {
				logging.FromContext(ctx, l.log).Warn(ctx, "block ip failed", "ip", ip, "error", err)
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(l.Window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Batas permintaan terlampaui. Coba lagi nanti.")
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(l.MaxRequests)-count, 10))
		next.ServeHTTP(w, r)
	})
}
