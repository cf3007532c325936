package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gigboard/marketplace-api/docs"
	"github.com/gigboard/marketplace-api/internal/api/handler"
	"github.com/gigboard/marketplace-api/internal/api/middleware"
	"github.com/gigboard/marketplace-api/internal/core/domain"
	"github.com/gigboard/marketplace-api/internal/core/ports"
)

// Deps is everything the router needs. DB and Redis may be nil when the
// in-memory store is used.
type Deps struct {
	Auth      ports.AuthService
	Jobs      ports.JobService
	Proposals ports.ProposalService
	Sessions  ports.SessionVerifier

	DB    *mongo.Database
	Redis *redis.Client

	Logger        zerolog.Logger
	SecureCookies bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	authHandler := handler.NewAuthHandler(d.Auth, d.SecureCookies)
	jobHandler := handler.NewJobHandler(d.Jobs)
	proposalHandler := handler.NewProposalHandler(d.Proposals)
	authenticated := middleware.Auth(d.Sessions)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authenticated)
	auth.PATCH("/password", authHandler.ChangePassword, authenticated)

	// --- Jobs ---
	v1 := e.Group("/v1")
	v1.GET("/jobs", jobHandler.List)

	posters := middleware.RBAC(domain.RoleAdmin, domain.RoleClient)
	v1.POST("/jobs", jobHandler.Create, authenticated, posters)
	v1.DELETE("/jobs/:job_id", jobHandler.Delete, authenticated, posters)

	// --- Proposals ---
	v1.GET("/jobs/:job_id/proposals", proposalHandler.ListByJob, authenticated, middleware.RBAC(domain.RoleClient))
	v1.POST("/jobs/:job_id/proposals", proposalHandler.Create, authenticated, middleware.RBAC(domain.RoleFreelancer))
	v1.PATCH("/proposals/:id/status", proposalHandler.UpdateStatus, authenticated, middleware.RBAC(domain.RoleClient))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
