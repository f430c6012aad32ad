package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// RequestLogger logs method, path, and duration for every request.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

// RateLimit rejects requests beyond the configured rate with 429.
//
// One process-wide limiter: conversions are heavyweight (transcode + upload),
// so the cap protects the host, not individual clients.
func RateLimit(perSecond float64, burst int) Middleware {
	if perSecond <= 0 {
		perSecond = 10
	}
	if burst <= 0 {
		burst = int(perSecond) * 2
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Liveness checks are exempt so orchestrators never see 429s.
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
