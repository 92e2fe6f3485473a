package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog пишет одну строку на запрос
func AccessLog(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			log.Info("http request: request_id=%s, method=%s, path=%s, status=%d, bytes=%d, duration_ms=%d",
				RequestIDFromContext(r.Context()), r.Method, r.URL.Path, rec.Status(), rec.bytes,
				time.Since(start).Milliseconds())
		})
	}
}
