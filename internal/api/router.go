package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/krm/catalog-api/internal/api/handler"
	"github.com/krm/catalog-api/internal/api/metrics"
	"github.com/krm/catalog-api/internal/api/middleware"
	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
	"github.com/krm/catalog-api/internal/core/service"
	mongorepo "github.com/krm/catalog-api/internal/infrastructure/db/mongo"
	pgrepo "github.com/krm/catalog-api/internal/infrastructure/db/postgres"
	redisstore "github.com/krm/catalog-api/internal/infrastructure/db/redis"
	"github.com/krm/catalog-api/internal/infrastructure/memory"
	"github.com/krm/catalog-api/internal/infrastructure/security"
	"github.com/krm/catalog-api/internal/pkg/config"

	_ "github.com/krm/catalog-api/docs"
)

// Deps carries the process-level resources the router wires into handlers.
// Mongo, Redis and Postgres are nil unless configuration selects them.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger
	// Registry receives HTTP and catalog size metrics. /metrics serves it
	// together with the default registry.
	Registry *prometheus.Registry

	Mongo    *mongo.Database
	Redis    *redis.Client
	Postgres *gorm.DB
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	if d.Config == nil {
		return nil, errors.New("router: config is required")
	}
	cfg := d.Config
	log := d.Logger
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	users, err := userRepository(d)
	if err != nil {
		return nil, err
	}
	homes, err := homeRepository(d)
	if err != nil {
		return nil, err
	}

	creds, err := credentialStore(cfg, users, hasher, log)
	if err != nil {
		return nil, err
	}
	authProvider := service.NewAuthProvider(creds, hasher, log)

	seed, err := service.ParseSeedPolicy(cfg.Catalog.SeedPolicy)
	if err != nil {
		return nil, err
	}
	store := memory.NewCatalogStore()
	catalog := service.NewCatalogService(store, service.CatalogOptions{Seed: seed, Strict: cfg.Catalog.Strict}, log)
	if err := metrics.RegisterCatalogSize(reg, store.Len); err != nil {
		return nil, fmt.Errorf("register catalog metrics: %w", err)
	}

	var throttle ports.AttemptThrottle
	if cfg.Auth.Throttle.Enabled {
		if d.Redis == nil {
			return nil, errors.New("router: AUTH_THROTTLE_ENABLED requires a redis client")
		}
		throttle = redisstore.NewFailureThrottle(d.Redis, cfg.Auth.Throttle.MaxFailures, cfg.Auth.Throttle.Window)
	}

	basic := middleware.BasicAuth(authProvider, middleware.BasicConfig{
		Realm:    cfg.Auth.Realm,
		Throttle: throttle,
		Logger:   log,
	})

	var tokens ports.TokenService
	gate := basic
	if cfg.Auth.Policy == config.PolicyBearer {
		tokens = service.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		gate = middleware.Bearer(tokens, cfg.Auth.Realm)
	}

	krmHandler := handler.NewKRMHandler()
	productHandler := handler.NewProductHandler(catalog)
	userHandler := handler.NewUserHandler(service.NewUserService(users, hasher, log))
	homeHandler := handler.NewHomeHandler(service.NewHomeService(homes))
	authHandler := handler.NewAuthHandler(tokens)
	listHandler := handler.NewListHandler(memory.NewElementList())

	// --- Operational routes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(healthChecks(d)).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireUser := middleware.RequireRole(domain.RoleUser)

	if tokens != nil {
		e.POST("/auth/token", authHandler.Token, basic, requireUser)
	}

	// --- Application routes ---
	app := e.Group("", middleware.Unless(cfg.Auth.ExemptPaths, gate, requireUser))

	app.GET("/me", authHandler.Me)

	krm := app.Group("/krm")
	krm.GET("/greet", krmHandler.Greet)
	krm.GET("/r", krmHandler.King)
	krm.POST("/post", krmHandler.Post)
	krm.GET("/:id", krmHandler.EchoID)

	products := app.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)

	user := app.Group("/user")
	user.GET("/", userHandler.List)
	user.GET("/:id", userHandler.Get)
	user.POST("/", userHandler.Register)

	app.GET("/list", listHandler.List)
	app.POST("/list", listHandler.Add)
	app.DELETE("/list", listHandler.Clear)

	home := app.Group("/homes")
	home.GET("", homeHandler.List)
	home.GET("/:id", homeHandler.Get)
	home.POST("", homeHandler.Save)

	return e, nil
}

func userRepository(d Deps) (ports.UserRepository, error) {
	switch d.Config.Users.Backend {
	case config.BackendMongo:
		if d.Mongo == nil {
			return nil, errors.New("router: USER_STORE=mongo requires a mongo database")
		}
		return mongorepo.NewUserRepository(d.Mongo), nil
	default:
		return memory.NewUserRepository(), nil
	}
}

func homeRepository(d Deps) (ports.HomeRepository, error) {
	switch d.Config.Homes.Backend {
	case config.BackendPostgres:
		if d.Postgres == nil {
			return nil, errors.New("router: HOME_STORE=postgres requires a database")
		}
		return pgrepo.NewHomeRepository(d.Postgres), nil
	default:
		return memory.NewHomeRepository(), nil
	}
}

func credentialStore(cfg *config.Config, users ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) (ports.CredentialStore, error) {
	role, ok := domain.ParseRole(cfg.Auth.Role)
	if !ok {
		return nil, fmt.Errorf("router: unknown AUTH_ROLE %q", cfg.Auth.Role)
	}
	if cfg.Auth.Source == config.SourceUsers {
		return security.NewUserCredentialStore(users, role, log), nil
	}
	return security.NewStaticCredentialStore(security.StaticPrincipal{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
		Role:         role,
	}, hasher)
}

func healthChecks(d Deps) map[string]handler.Check {
	checks := make(map[string]handler.Check)
	if d.Mongo != nil {
		db := d.Mongo
		checks["mongodb"] = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
	}
	if d.Redis != nil {
		rdb := d.Redis
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	if d.Postgres != nil {
		gdb := d.Postgres
		checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}
