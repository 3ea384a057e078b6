package middleware

import (
	"net/http"

	"localwear-be/internal/logger"
	"localwear-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder captures the status code written by the handler.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request. It must run inside
// AuthMiddleware so the caller's user_id and role reach the log.
func LoggingMiddleware(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := metrics.StartTimer()
			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rec, r)

			if reg != nil {
				reg.Requests.Inc()
			}

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", timer.Duration()),
				zap.String("remote_ip", r.RemoteAddr),
			}

			log := logger.FromCtx(r.Context())
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				log.Error("http request", fields...)
			case rec.statusCode >= http.StatusBadRequest:
				log.Warn("http request", fields...)
			default:
				log.Info("http request", fields...)
			}
		})
	}
}
