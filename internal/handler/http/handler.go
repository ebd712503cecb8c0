package http

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-todo-list/internal/cache"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/service"
)

// RateLimiter is satisfied by *cache.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, route, clientIP string) (cache.RateLimitResult, error)
}

// Options carries the transport settings of a [Handler].
type Options struct {
	// AllowedOrigins is the CORS allow list.
	AllowedOrigins []string

	// Production hides error details from responses.
	Production bool

	// Metrics may be nil.
	Metrics *metrics.Metrics

	// RateLimiter may be nil, which disables rate limiting.
	RateLimiter RateLimiter
}

type Handler struct {
	services *service.Services

	allowedOrigins map[string]struct{}
	production     bool
	metrics        *metrics.Metrics
	limiter        RateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, opts Options, logger *logger.Logger) *Handler {
	origins := make(map[string]struct{}, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins[strings.ToLower(origin)] = struct{}{}
		}
	}

	logger.Info().Int("allowed_origins", len(origins)).Bool("rate_limit", opts.RateLimiter != nil).Msg("http handler created")
	return &Handler{
		services:       services,
		allowedOrigins: origins,
		production:     opts.Production,
		metrics:        opts.Metrics,
		limiter:        opts.RateLimiter,
		logger:         logger,
	}
}
