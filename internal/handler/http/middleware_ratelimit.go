package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-todo-list/internal/logger"
)

const rateLimitedMessage = "Too many requests, please try again later"

// withRateLimit applies the fixed-window limiter per client IP and route.
// Limiter failures let the request through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		ip := clientIP(r)

		result, err := h.limiter.Allow(r.Context(), rateLimitRoute(r), ip)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withRateLimit").Msg("rate limit check failed")
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}

			log.Warn().
				Str("endpoint", r.Method+" "+r.URL.Path).
				Int("retry_after_seconds", retryAfter).
				Msg("rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeMessage(w, http.StatusTooManyRequests, false, rateLimitedMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimitRoute keys the limiter by route pattern, so every reset secret
// shares the reset-password window.
func rateLimitRoute(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return r.Method + " " + pattern
		}
	}
	return r.Method + " " + r.URL.Path
}

// clientIP relies on middleware.RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
