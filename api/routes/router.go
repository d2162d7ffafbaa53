package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/labstock-backend/api/controllers"
	analyticscontrollers "github.com/angelmondragon/labstock-backend/api/controllers/analytics"
	"github.com/angelmondragon/labstock-backend/api/middleware"
	"github.com/angelmondragon/labstock-backend/internal/analytics"
	"github.com/angelmondragon/labstock-backend/internal/auth"
	"github.com/angelmondragon/labstock-backend/internal/inventory"
	"github.com/angelmondragon/labstock-backend/pkg/auth/session"
	"github.com/angelmondragon/labstock-backend/pkg/config"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/angelmondragon/labstock-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Dependencies is everything the HTTP surface needs. RateLimiter and Redis
// stay nil when redis is not configured.
type Dependencies struct {
	Config           *config.Config
	Logger           *logger.Logger
	Sessions         sessionManager
	AuthService      auth.Service
	InventoryService inventory.Service
	AnalyticsService analytics.Service
	RateLimiter      rateLimiter
	Redis            redis.Pinger
	HTTPMetrics      middleware.RequestObserver
	Gatherer         prometheus.Gatherer
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Redis, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.InventoryService, logg))
			r.Post("/", controllers.CreateProduct(deps.InventoryService, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(deps.InventoryService, logg))
				r.Patch("/", controllers.UpdateProduct(deps.InventoryService, logg))
				r.Delete("/", controllers.DeleteProduct(deps.InventoryService, logg))
				r.Post("/restock", controllers.RestockProduct(deps.InventoryService, logg))
				r.Post("/defective", controllers.MarkProductDefective(deps.InventoryService, logg))
				r.Get("/records", controllers.ListProductRecords(deps.InventoryService, logg))
				r.Post("/records", controllers.CreateProductRecord(deps.InventoryService, logg))
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", analyticscontrollers.Summary(deps.AnalyticsService, logg))
			r.Get("/monthly", analyticscontrollers.Monthly(deps.AnalyticsService, logg))
			r.Get("/monthly/{month}/export", analyticscontrollers.Export(deps.AnalyticsService, logg))
		})
	})

	return r
}
