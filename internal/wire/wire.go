package wire

import (
	"context"

	"business-onboarding/internal/adaptor"
	"business-onboarding/internal/data/repository"
	"business-onboarding/internal/usecase"
	"business-onboarding/pkg/database"
	"business-onboarding/pkg/middleware"
	"business-onboarding/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes
func Wiring(
	db database.PgxIface,
	rdb redis.UniversalClient,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	repo := repository.NewRepository(db, rdb, logger)
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	health := adaptor.NewHealthHandler(map[string]adaptor.HealthCheck{
		"postgres": db.Ping,
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	}, logger)

	return &App{
		Router: setupRouter(handler, health, service, config, logger),
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	health *adaptor.HealthHandler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	// Apply routes
	wireBusiness(r, handler.Business)
	wireOTP(r, handler.OTP, service.RateLimit, logger)
	wireUser(r, handler.User, service.Session, config, logger)
	wireAuth(r, handler.Auth, service.Session, config, logger)

	r.Get("/health", health.Health)

	return r
}
