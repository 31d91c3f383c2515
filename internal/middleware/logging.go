package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-Id"

// RequestLogger tags every request with an id, echoed in X-Request-Id, and
// logs one line when the handler returns.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := r.Header.Get(RequestIdHeader)
			if requestId == "" {
				requestId = uuid.New().String()
			}
			w.Header().Set(RequestIdHeader, requestId)

			m := httpsnoop.CaptureMetrics(next, w, r)

			log.Info("Request completed",
				"request_id", requestId,
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"bytes", m.Written,
				"duration", m.Duration.String(),
			)
		})
	}
}
