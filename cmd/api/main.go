// Package main is the entrypoint for the recipes API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/recetario/recetario/internal/cache"
	"github.com/recetario/recetario/internal/config"
	"github.com/recetario/recetario/internal/handler"
	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/middleware"
	"github.com/recetario/recetario/internal/repository"
	"github.com/recetario/recetario/internal/server"
	"github.com/recetario/recetario/internal/service"
	"github.com/recetario/recetario/internal/store"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to initialize store",
			slog.String("driver", cfg.StoreDriver),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("store ready", "driver", cfg.StoreDriver)

	// Redis is optional: without it rate limiting stays in-process.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			_ = st.Close()
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var recorder metrics.Recorder = metrics.NewNoop()
	if cfg.MetricsEnabled {
		recorder = metrics.NewPrometheus(reg)
	}

	ingredientService := service.NewIngredientService(st, recorder, logger)
	recipeService := service.NewRecipeService(st, ingredientService, recorder, logger)
	userService := service.NewUserService(st, ingredientService, recorder, logger)

	deps := routerDeps{
		users:       handler.NewUserHandler(userService, logger),
		recipes:     handler.NewRecipeHandler(recipeService, logger),
		ingredients: handler.NewIngredientHandler(ingredientService, logger),
		health:      newHealthHandler(st, cacheClient),
		limiter:     newLimiter(cfg, cacheClient),
	}
	if cfg.MetricsEnabled {
		deps.httpMetrics = middleware.NewHTTPMetrics(reg)
		deps.metrics = handler.NewMetricsHandler(reg)
	}

	r := setupRouter(deps, cfg, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("store", func(ctx context.Context) error {
		return st.Close()
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", cfg.StoreDriver,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		return store.NewMemory(), nil
	}
	return repository.New(ctx, cfg.DatabaseURL, repository.Options{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
}

// newHealthHandler avoids handing a typed nil *cache.Cache to the handler.
func newHealthHandler(st store.Store, c *cache.Cache) *handler.HealthHandler {
	if c == nil {
		return handler.NewHealthHandler(st, nil)
	}
	return handler.NewHealthHandler(st, c)
}

func newLimiter(cfg *config.Config, c *cache.Cache) middleware.IPLimiter {
	if c != nil {
		return cache.NewRedisLimiter(c, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	return cache.NewLocalLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	users       *handler.UserHandler
	recipes     *handler.RecipeHandler
	ingredients *handler.IngredientHandler
	health      *handler.HealthHandler
	limiter     middleware.IPLimiter
	httpMetrics *middleware.HTTPMetrics // nil when metrics are disabled
	metrics     http.Handler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	h := handler.New()
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	if deps.httpMetrics != nil {
		r.Use(deps.httpMetrics.Handler)
	}

	// Health endpoints and metrics sit outside the rate limit.
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	if deps.metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitIP(middleware.RateLimitConfig{
			Logger:  logger,
			Limiter: deps.limiter,
			Enabled: cfg.RateLimitEnabled,
		}))
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

		r.Get("/", h.Hello)
		r.Route("/api/usuarios", deps.users.Routes)
		r.Route("/api/recetas", deps.recipes.Routes)
		r.Route("/api/ingredientes", deps.ingredients.Routes)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
