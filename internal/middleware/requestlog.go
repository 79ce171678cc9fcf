package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger attaches a request-scoped logger to the context and logs
// each request on completion with its status and duration.
func RequestLogger(base logging.Logger) func(http.Handler) http.Handler {
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With(
				"request_id", counter.Add(1),
				"method", r.Method,
				"path", r.URL.Path,
			)
			ctx := logging.ContextWithLogger(r.Context(), logger)
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{"status", status, "bytes", ww.BytesWritten(), "duration", time.Since(start)}
			if status >= http.StatusInternalServerError {
				logger.Warn(ctx, "request completed", args...)
				return
			}
			logger.Info(ctx, "request completed", args...)
		})
	}
}
