package handler

import (
	"github.com/MKhiriev/go-todo-list/internal/cache"
	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/handler/grpc"
	"github.com/MKhiriev/go-todo-list/internal/handler/http"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds a transport handler for every configured address.
// metrics and limiter may be nil.
func NewHandlers(
	services *service.Services,
	cfg config.StructuredConfig,
	metrics *metrics.Metrics,
	limiter *cache.RateLimiter,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		opts := http.Options{
			AllowedOrigins: allowedOrigins(cfg),
			Production:     cfg.App.IsProduction(),
			Metrics:        metrics,
		}
		if limiter != nil {
			opts.RateLimiter = limiter
		}
		handlers.HTTP = http.NewHandler(services, opts, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

// allowedOrigins is the configured CORS list plus the frontend itself.
func allowedOrigins(cfg config.StructuredConfig) []string {
	origins := make([]string, 0, len(cfg.Server.AllowedOrigins)+1)
	origins = append(origins, cfg.Server.AllowedOrigins...)
	if cfg.App.FrontendURL != "" {
		origins = append(origins, cfg.App.FrontendURL)
	}
	return origins
}
