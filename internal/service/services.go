package service

import (
	"github.com/MKhiriev/go-todo-list/internal/adapter"
	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/metrics"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

type Services struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	TodoService          TodoService
	ErrorLogService      ErrorLogService
	HealthService        HealthService
	AppInfoService       AppInfoService
}

// Dependencies are the collaborators the services are built from.
type Dependencies struct {
	Storages    *store.Storages
	DB          Pinger
	MailAdapter adapter.MailAdapter
	Metrics     *metrics.Metrics
	Hasher      *utils.PasswordHasher
	BuildInfo   models.AppBuildInfo
}

func NewServices(deps Dependencies, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	if deps.Hasher == nil {
		deps.Hasher = utils.NewPasswordHasher(utils.DefaultArgon2Params)
	}

	authService := NewAuthService(deps.Storages.UserRepository, deps.Hasher, cfg.App, logger)

	return &Services{
		AuthService: NewAuthValidationService().Wrap(authService),
		PasswordResetService: NewPasswordResetService(
			deps.Storages.UserRepository,
			deps.MailAdapter,
			authService,
			deps.Hasher,
			deps.Metrics,
			cfg.App,
			logger,
		),
		TodoService:     NewTodoValidationService().Wrap(NewTodoService(deps.Storages.TodoRepository, logger)),
		ErrorLogService: NewErrorLogService(deps.Storages.ErrorLogRepository, logger),
		HealthService:   NewHealthService(deps.DB),
		AppInfoService:  NewAppInfoService(deps.BuildInfo, logger),
	}
}
